// Package binder classifies resolved references into the three binding
// shapes the IR builder consumes: module-level bindings, function-local
// bindings, and globals that no declaration in the unit accounts for. The
// classification is derived from a completed scope table but deliberately
// opaque to the builder, which only keys identifier cells by it.
package binder

import (
	"jsir/internal/ast"
	"jsir/internal/sema"
	"jsir/internal/source"
)

// BindingID is an opaque per-unit identity for a named binding. Two
// references carry the same BindingID iff they resolve to the same
// declaration.
type BindingID uint32

const NoBindingID BindingID = 0

type BindingKind uint8

const (
	// BindingGlobal names something no declaration in the unit defines.
	BindingGlobal BindingKind = iota
	// BindingModule names a declaration owned by the module scope.
	BindingModule
	// BindingLocal names any other declaration.
	BindingLocal
)

func (k BindingKind) String() string {
	switch k {
	case BindingModule:
		return "module"
	case BindingLocal:
		return "local"
	default:
		return "global"
	}
}

type Binding struct {
	Kind BindingKind
	ID   BindingID // NoBindingID for globals
	Name source.StringID
}

// Binder resolves syntax nodes to bindings using a completed scope table.
type Binder struct {
	table *sema.Table
}

func New(table *sema.Table) *Binder {
	return &Binder{table: table}
}

// ResolveUse classifies an identifier use site. An unresolved use is a
// global, named by the identifier itself.
func (b *Binder) ResolveUse(node ast.NodeRef, name source.StringID) Binding {
	if refID, ok := b.table.NodeRefs[node]; ok {
		if ref := b.table.Ref(refID); ref != nil && ref.Decl.IsValid() {
			return b.fromDecl(ref.Decl)
		}
	}
	return Binding{Kind: BindingGlobal, Name: name}
}

// ResolveDecl classifies a declaration site by its own declaration record.
func (b *Binder) ResolveDecl(node ast.NodeRef, name source.StringID) Binding {
	if declID, ok := b.table.NodeDecls[node]; ok {
		return b.fromDecl(declID)
	}
	return Binding{Kind: BindingGlobal, Name: name}
}

func (b *Binder) fromDecl(id sema.DeclID) Binding {
	decl := b.table.Decl(id)
	kind := BindingLocal
	if decl.Scope == b.table.Root() {
		kind = BindingModule
	}
	return Binding{Kind: kind, ID: BindingID(id), Name: decl.Name}
}
