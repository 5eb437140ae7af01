package sema

import (
	"fmt"

	"fortio.org/safecast"

	"jsir/internal/ast"
	"jsir/internal/diag"
	"jsir/internal/source"
)

// Table owns the scope tree, the declaration/reference/label records, and
// the diagnostics of one compilation unit. Index 0 of every arena is
// reserved so the zero ID means "absent".
//
// The four node-association maps are the published result: later stages
// hold syntax nodes and ask the table what scope, declaration, reference,
// or label analysis attached to them.
type Table struct {
	scopes []Scope
	decls  []Declaration
	refs   []Reference
	labels []Label

	root    ScopeID
	Strings *source.Interner

	NodeScopes map[ast.NodeRef]ScopeID
	NodeDecls  map[ast.NodeRef]DeclID
	NodeRefs   map[ast.NodeRef]RefID
	NodeLabels map[ast.NodeRef]LabelID

	Diags *diag.Bag
}

// NewTable builds a table with a Module root scope. If strings is nil a
// fresh interner is allocated.
func NewTable(strings *source.Interner, maxDiagnostics int) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		scopes:     make([]Scope, 1, 16),
		decls:      make([]Declaration, 1, 32),
		refs:       make([]Reference, 1, 64),
		labels:     make([]Label, 1, 8),
		Strings:    strings,
		NodeScopes: make(map[ast.NodeRef]ScopeID),
		NodeDecls:  make(map[ast.NodeRef]DeclID),
		NodeRefs:   make(map[ast.NodeRef]RefID),
		NodeLabels: make(map[ast.NodeRef]LabelID),
		Diags:      diag.NewBag(maxDiagnostics),
	}
	t.root = t.AddScope(NoScopeID, ScopeModule)
	return t
}

// Root returns the Module scope every other scope descends from.
func (t *Table) Root() ScopeID { return t.root }

// Scope returns the scope for id, or nil for an invalid ID.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Decl returns the declaration for id, or nil for an invalid ID.
func (t *Table) Decl(id DeclID) *Declaration {
	if !id.IsValid() || int(id) >= len(t.decls) {
		return nil
	}
	return &t.decls[id]
}

// Ref returns the reference for id, or nil for an invalid ID.
func (t *Table) Ref(id RefID) *Reference {
	if !id.IsValid() || int(id) >= len(t.refs) {
		return nil
	}
	return &t.refs[id]
}

// Label returns the label for id, or nil for an invalid ID.
func (t *Table) Label(id LabelID) *Label {
	if !id.IsValid() || int(id) >= len(t.labels) {
		return nil
	}
	return &t.labels[id]
}

// ScopeCount reports allocated scopes, excluding the sentinel slot.
func (t *Table) ScopeCount() int { return len(t.scopes) - 1 }

// DeclCount reports allocated declarations, excluding the sentinel slot.
func (t *Table) DeclCount() int { return len(t.decls) - 1 }

// RefCount reports allocated references, excluding the sentinel slot.
func (t *Table) RefCount() int { return len(t.refs) - 1 }

// AddScope allocates a child scope under parent.
func (t *Table) AddScope(parent ScopeID, kind ScopeKind) ScopeID {
	value, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ScopeID(value)
	t.scopes = append(t.scopes, Scope{
		Kind:      kind,
		Parent:    parent,
		NameIndex: make(map[source.StringID][]DeclID),
	})
	if p := t.Scope(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// NextDeclID is the ID the next AddDeclaration call will mint. Pending
// references snapshot it so the resolver can tell whether a candidate
// declaration existed at the moment of use.
func (t *Table) NextDeclID() DeclID {
	value, err := safecast.Conv[uint32](len(t.decls))
	if err != nil {
		panic(fmt.Errorf("declaration arena overflow: %w", err))
	}
	return DeclID(value)
}

// AddDeclaration registers name in scope. It never rejects: duplicate
// handling is the caller's concern (diagnose, then record anyway).
func (t *Table) AddDeclaration(scope ScopeID, name source.StringID, kind DeclKind, span source.Span) DeclID {
	id := t.NextDeclID()
	t.decls = append(t.decls, Declaration{
		ID:    id,
		Name:  name,
		Kind:  kind,
		Scope: scope,
		Span:  span,
	})
	if s := t.Scope(scope); s != nil {
		s.Decls = append(s.Decls, id)
		s.NameIndex[name] = append(s.NameIndex[name], id)
	}
	return id
}

// LookupDeclaration searches scope and then its ancestors for name,
// returning the nearest match; within one scope the newest declaration
// wins. This models lexical shadowing.
func (t *Table) LookupDeclaration(scope ScopeID, name source.StringID) (DeclID, bool) {
	for scope.IsValid() {
		s := t.Scope(scope)
		if s == nil {
			break
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1], true
		}
		scope = s.Parent
	}
	return NoDeclID, false
}

// lookupForReference resolves a pending reference: the scope-chain walk of
// LookupDeclaration, but a candidate that was declared after the use site
// (ID >= before) only qualifies if its kind is hoisted. A scope whose only
// candidates are disqualified does not stop the walk; an outer binding may
// still apply.
func (t *Table) lookupForReference(scope ScopeID, name source.StringID, before DeclID, hoisted HoistMask) (DeclID, bool) {
	for scope.IsValid() {
		s := t.Scope(scope)
		if s == nil {
			break
		}
		ids := s.NameIndex[name]
		for i := len(ids) - 1; i >= 0; i-- {
			d := t.Decl(ids[i])
			if d == nil {
				continue
			}
			if d.ID < before || hoisted.Has(d.Kind) {
				return d.ID, true
			}
		}
		scope = s.Parent
	}
	return NoDeclID, false
}

// AddReference records a resolved use of decl.
func (t *Table) AddReference(scope ScopeID, kind RefKind, decl DeclID) RefID {
	value, err := safecast.Conv[uint32](len(t.refs))
	if err != nil {
		panic(fmt.Errorf("reference arena overflow: %w", err))
	}
	id := RefID(value)
	t.refs = append(t.refs, Reference{
		Kind:  kind,
		Scope: scope,
		Decl:  decl,
	})
	return id
}

// AddLabel registers a named label owned by scope.
func (t *Table) AddLabel(scope ScopeID, kind LabelKind, name source.StringID) LabelID {
	return t.addLabel(scope, kind, name)
}

// AddAnonymousLabel registers an unnamed label (plain loops, switches).
func (t *Table) AddAnonymousLabel(scope ScopeID, kind LabelKind) LabelID {
	return t.addLabel(scope, kind, source.NoStringID)
}

func (t *Table) addLabel(scope ScopeID, kind LabelKind, name source.StringID) LabelID {
	value, err := safecast.Conv[uint32](len(t.labels))
	if err != nil {
		panic(fmt.Errorf("label arena overflow: %w", err))
	}
	id := LabelID(value)
	t.labels = append(t.labels, Label{
		ID:    id,
		Name:  name,
		Kind:  kind,
		Scope: scope,
	})
	return id
}

func (t *Table) report(code diag.Code, span source.Span, msg string) {
	t.Diags.Add(diag.NewError(code, span, msg))
}
