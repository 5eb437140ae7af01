package sema

import (
	"jsir/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeModule             // program root
	ScopeFunction           // function body, including parameters
	ScopeBlock              // generic block scope
	ScopeFor                // block-scoped for-loop header
	ScopeSwitch             // switch case list
	ScopeCatch              // catch clause parameter
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeFor:
		return "for"
	case ScopeSwitch:
		return "switch"
	case ScopeCatch:
		return "catch"
	default:
		return "invalid"
	}
}

// Scope models one lexical scope in the parent-child hierarchy.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	NameIndex map[source.StringID][]DeclID
	Decls     []DeclID
	Children  []ScopeID
}

// DeclKind classifies a declaration site.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclVar
	DeclLet
	DeclConst
	DeclFunction
	DeclParameter
	DeclImport
	DeclCatchParam
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclParameter:
		return "parameter"
	case DeclImport:
		return "import"
	case DeclCatchParam:
		return "catch"
	default:
		return "invalid"
	}
}

// Mask converts a declaration kind into a HoistMask bit.
func (k DeclKind) Mask() HoistMask {
	return HoistMask(1 << uint(k))
}

// Declaration is immutable once created. Duplicates in the same scope are
// diagnosed but still recorded; later lookups bind to the newest one.
type Declaration struct {
	ID    DeclID
	Name  source.StringID
	Kind  DeclKind
	Scope ScopeID
	Span  source.Span
}

// RefKind classifies how a reference uses its declaration.
type RefKind uint8

const (
	RefRead RefKind = iota
	RefWrite
	RefReadWrite
)

func (k RefKind) String() string {
	switch k {
	case RefRead:
		return "read"
	case RefWrite:
		return "write"
	default:
		return "readwrite"
	}
}

// Reference binds one use site to its declaration.
type Reference struct {
	Kind  RefKind
	Scope ScopeID
	Decl  DeclID
}

// LabelKind separates loop labels (valid continue targets) from the rest.
type LabelKind uint8

const (
	LabelLoop LabelKind = iota
	LabelOther
)

func (k LabelKind) String() string {
	if k == LabelLoop {
		return "loop"
	}
	return "other"
}

// Label is a break/continue target. An invalid Name means the label is
// anonymous (plain loops and switches).
type Label struct {
	ID    LabelID
	Name  source.StringID
	Kind  LabelKind
	Scope ScopeID
}
