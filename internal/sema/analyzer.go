package sema

import (
	"fmt"

	"jsir/internal/ast"
	"jsir/internal/diag"
	"jsir/internal/source"
)

// Analyze walks the tree once, building the scope table with deferred
// reference resolution, then resolves every pending reference against the
// completed table. Diagnostics accumulate; traversal never stops early.
func Analyze(tree *ast.Tree, opts Options) *Table {
	opts = opts.withDefaults()
	a := &analyzer{
		tree:  tree,
		table: NewTable(tree.Strings, opts.MaxDiagnostics),
		opts:  opts,
	}
	a.current = a.table.Root()
	for _, id := range tree.Body {
		a.visitStmt(id)
	}
	a.complete()
	return a.table
}

// pendingRef captures one identifier use during the traversal. NextDecl is
// the declaration counter at the moment of use: it lets the resolver apply
// the forward-reference rule without re-walking the tree.
type pendingRef struct {
	Scope    ScopeID
	Node     ast.NodeRef
	Name     source.StringID
	Kind     RefKind
	Span     source.Span
	NextDecl DeclID
}

type analyzer struct {
	tree    *ast.Tree
	table   *Table
	opts    Options
	current ScopeID
	labels  []LabelID
	pending []pendingRef
}

// complete is phase two: resolve every pending reference in recording
// order. Unresolved references are diagnosed and dropped; the table stays
// consistent either way.
func (a *analyzer) complete() {
	for _, ref := range a.pending {
		decl, ok := a.table.lookupForReference(ref.Scope, ref.Name, ref.NextDecl, a.opts.Hoisted)
		if !ok {
			a.table.report(diag.SemaUndefinedVariable, ref.Span, "Undefined variable")
			continue
		}
		id := a.table.AddReference(ref.Scope, ref.Kind, decl)
		a.table.NodeRefs[ref.Node] = id
	}
	a.pending = nil
}

func (a *analyzer) enterScope(kind ScopeKind) ScopeID {
	scope := a.table.AddScope(a.current, kind)
	a.current = scope
	return scope
}

// closeScope pops back to the parent. A mismatch is a traversal bug, not a
// user error.
func (a *analyzer) closeScope(id ScopeID) {
	if a.current != id {
		panic(fmt.Errorf("sema: mismatched scope enter/close: have %d, closing %d", a.current, id))
	}
	scope := a.table.Scope(a.current)
	if scope == nil || !scope.Parent.IsValid() {
		panic(fmt.Errorf("sema: closing scope %d without a parent", id))
	}
	a.current = scope.Parent
}

func (a *analyzer) enter(kind ScopeKind, f func()) ScopeID {
	scope := a.enterScope(kind)
	f()
	a.closeScope(scope)
	return scope
}

func (a *analyzer) enterLabel(id LabelID, f func()) {
	a.labels = append(a.labels, id)
	f()
	last := a.labels[len(a.labels)-1]
	if last != id {
		panic(fmt.Errorf("sema: mismatched label push/pop: have %d, popping %d", last, id))
	}
	a.labels = a.labels[:len(a.labels)-1]
}

// lookupLabel scans the label stack innermost-first. A named lookup only
// matches the exact name; an unnamed lookup takes the innermost label
// unconditionally.
func (a *analyzer) lookupLabel(name source.StringID) *Label {
	for i := len(a.labels) - 1; i >= 0; i-- {
		label := a.table.Label(a.labels[i])
		if label == nil {
			continue
		}
		if !name.IsValid() {
			return label
		}
		if label.Name == name {
			return label
		}
	}
	return nil
}

// reference records a pending use of name at node; resolution happens in
// complete().
func (a *analyzer) reference(node ast.NodeRef, name source.StringID, kind RefKind, span source.Span) {
	a.pending = append(a.pending, pendingRef{
		Scope:    a.current,
		Node:     node,
		Name:     name,
		Kind:     kind,
		Span:     span,
		NextDecl: a.table.NextDeclID(),
	})
}

// declareIdent creates a declaration for an identifier pattern. A duplicate
// in the same scope is diagnosed but recorded anyway, as if shadowing were
// allowed; later lookups bind to the newest declaration.
func (a *analyzer) declareIdent(patID ast.PatID, kind DeclKind) {
	pat := a.tree.Pat(patID)
	name := pat.Ident.Name
	if prev, ok := a.table.LookupDeclaration(a.current, name); ok {
		if d := a.table.Decl(prev); d != nil && d.Scope == a.current {
			a.table.report(diag.SemaDuplicateDecl, pat.Span, "Duplicate declaration")
		}
	}
	id := a.table.AddDeclaration(a.current, name, kind, pat.Span)
	a.table.NodeDecls[ast.PatRef(patID)] = id
}

// declarePattern declares every leaf identifier of a binding pattern with
// the given kind. Default values and computed keys are ordinary expressions
// and are visited before their pattern halves.
func (a *analyzer) declarePattern(patID ast.PatID, kind DeclKind) {
	pat := a.tree.Pat(patID)
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatIdent:
		a.declareIdent(patID, kind)
	case ast.PatArray:
		for _, el := range pat.Array.Elements {
			if el.IsValid() {
				a.declarePattern(el, kind)
			}
		}
	case ast.PatObject:
		for _, prop := range pat.Object.Props {
			if !prop.IsRest && prop.Computed {
				a.visitExpr(prop.Key)
			}
			a.declarePattern(prop.Value, kind)
		}
	case ast.PatRest:
		a.declarePattern(pat.Rest.Arg, kind)
	case ast.PatAssign:
		a.visitExpr(pat.Assign.Right)
		a.declarePattern(pat.Assign.Left, kind)
	default:
		panic(fmt.Errorf("sema: declarePattern on invalid pattern kind %d", pat.Kind))
	}
}

// assignPattern handles a pattern in assignment position: every leaf
// identifier is a Write reference to an existing declaration, never a new
// binding.
func (a *analyzer) assignPattern(patID ast.PatID) {
	pat := a.tree.Pat(patID)
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatIdent:
		a.reference(ast.PatRef(patID), pat.Ident.Name, RefWrite, pat.Span)
	case ast.PatArray:
		for _, el := range pat.Array.Elements {
			if el.IsValid() {
				a.assignPattern(el)
			}
		}
	case ast.PatObject:
		for _, prop := range pat.Object.Props {
			if !prop.IsRest && prop.Computed {
				a.visitExpr(prop.Key)
			}
			a.assignPattern(prop.Value)
		}
	case ast.PatRest:
		a.assignPattern(pat.Rest.Arg)
	case ast.PatAssign:
		a.visitExpr(pat.Assign.Right)
		a.assignPattern(pat.Assign.Left)
	default:
		panic(fmt.Errorf("sema: assignPattern on invalid pattern kind %d", pat.Kind))
	}
}

// visitFunction handles the shared function shape. Parameters live in the
// function scope; a `this` pseudo-parameter never creates a binding; the
// block body is visited without an extra block scope. declareSelf makes a
// named function expression visible inside its own body only.
func (a *analyzer) visitFunction(fnID ast.FnID, declareSelf bool) {
	fn := a.tree.Fn(fnID)
	// break/continue never cross a function boundary
	saved := a.labels
	a.labels = nil
	defer func() { a.labels = saved }()
	scope := a.enter(ScopeFunction, func() {
		if declareSelf && fn.NamePat.IsValid() {
			a.declareIdent(fn.NamePat, DeclFunction)
		}
		for _, param := range fn.Params {
			if p := a.tree.Pat(param); p != nil && p.Kind == ast.PatIdent {
				if a.tree.Name(p.Ident.Name) == "this" {
					continue
				}
			}
			a.declarePattern(param, DeclParameter)
		}
		if fn.HasBlockBody {
			for _, id := range fn.Body {
				a.visitStmt(id)
			}
		} else if fn.ExprBody.IsValid() {
			a.visitExpr(fn.ExprBody)
		}
	})
	a.table.NodeScopes[ast.FnRef(fnID)] = scope
}
