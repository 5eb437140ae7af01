// Package lower drives the IR builder over an analyzed syntax tree,
// producing one finalized unit per module. It consumes the scope table for
// label resolution and a binder for identifier classification; control
// flow becomes basic blocks and terminals, everything else becomes
// instructions on the open block.
package lower

import (
	"jsir/internal/ast"
	"jsir/internal/binder"
	"jsir/internal/diag"
	"jsir/internal/hir"
	"jsir/internal/sema"
	"jsir/internal/source"
)

// loopTargets are the jump destinations registered for one label while its
// statement is being lowered. Switch labels have no continue target.
type loopTargets struct {
	breakTo     hir.BlockID
	continueTo  hir.BlockID
	hasContinue bool
}

type savedLoop struct {
	label sema.LabelID
	prev  loopTargets
	had   bool
}

type lowerer struct {
	tree  *ast.Tree
	table *sema.Table
	bnd   *binder.Binder
	b     *hir.Builder
	rep   diag.Reporter
	loops map[sema.LabelID]loopTargets

	// named labels waiting for the loop they wrap to register targets
	extraLabels []sema.LabelID
}

// Module lowers a module body into a finalized unit. Diagnostics for
// syntax the IR cannot model accumulate in diags; lowering continues past
// them.
func Module(tree *ast.Tree, table *sema.Table, env *hir.Environment, diags *diag.Bag) *hir.Unit {
	l := &lowerer{
		tree:  tree,
		table: table,
		bnd:   binder.New(table),
		b:     hir.NewBuilder(env),
		rep:   diag.BagReporter{Bag: diags},
		loops: make(map[sema.LabelID]loopTargets),
	}
	for _, id := range tree.Body {
		l.stmt(id)
	}
	l.b.Terminate(hir.Terminal{Kind: hir.TermReturn}, hir.BlockDefault)
	return l.b.Build()
}

func (l *lowerer) unsupported(span source.Span, what string) hir.Place {
	l.rep.Report(diag.New(diag.SevWarning, diag.HirUnsupportedSyntax, span,
		"Unsupported syntax: "+what))
	return l.emit(hir.Value{
		Kind:        hir.ValUnsupported,
		Unsupported: hir.UnsupportedValue{Span: span},
	}, span)
}

// emit pushes value into a fresh temporary and returns its place.
func (l *lowerer) emit(value hir.Value, span source.Span) hir.Place {
	lvalue := hir.Place{Ident: l.b.MakeTemporary(), Span: span}
	l.b.Push(lvalue, value, span)
	return lvalue
}

// placeFor returns the place of a named binding pattern node, or false for
// globals and unresolved names.
func (l *lowerer) placeFor(node ast.NodeRef, name source.StringID, span source.Span, decl bool) (hir.Place, bool) {
	var bind binder.Binding
	if decl {
		bind = l.bnd.ResolveDecl(node, name)
	} else {
		bind = l.bnd.ResolveUse(node, name)
	}
	ident, ok := l.b.ResolveBinding(bind)
	if !ok {
		return hir.Place{}, false
	}
	return hir.Place{Ident: ident, Span: span}, true
}

// withLoop registers t under the loop's own label plus any pending named
// labels wrapping it, runs f, then unregisters everything.
func (l *lowerer) withLoop(label sema.LabelID, t loopTargets, f func()) {
	labels := make([]sema.LabelID, 0, 1+len(l.extraLabels))
	if label.IsValid() {
		labels = append(labels, label)
	}
	for _, extra := range l.extraLabels {
		if extra.IsValid() {
			labels = append(labels, extra)
		}
	}
	l.extraLabels = l.extraLabels[:0]

	saved := make([]savedLoop, 0, len(labels))
	for _, lb := range labels {
		prev, had := l.loops[lb]
		saved = append(saved, savedLoop{label: lb, prev: prev, had: had})
		l.loops[lb] = t
	}
	f()
	for _, s := range saved {
		if s.had {
			l.loops[s.label] = s.prev
		} else {
			delete(l.loops, s.label)
		}
	}
}

func (l *lowerer) branchTargets(stmtID ast.StmtID) (loopTargets, bool) {
	label, ok := l.table.NodeLabels[ast.StmtRef(stmtID)]
	if !ok {
		return loopTargets{}, false
	}
	t, ok := l.loops[label]
	return t, ok
}
