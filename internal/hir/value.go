package hir

import (
	"jsir/internal/source"
)

// MutableRange is the instruction interval over which a variable is known
// to be mutated; optimization passes widen it as they learn more.
type MutableRange struct {
	Start InstrID
	End   InstrID
}

// IdentData is the shared mutable metadata of a logical variable. Every
// operand aliasing the same variable holds the same *IdentData, so a
// mutation through one operand is visible through all of them.
type IdentData struct {
	MutableRange MutableRange
	Scope        ScopeVarID
	Type         TypeVarID
}

// Identifier is a logical variable: named when it came from a source
// binding, unnamed when it is a compiler temporary.
type Identifier struct {
	ID   IdentID
	Name source.StringID // NoStringID for temporaries
	Data *IdentData
}

// Place is an operand slot referencing an identifier.
type Place struct {
	Ident Identifier
	Span  source.Span
}

type ValueKind uint8

const (
	ValInvalid ValueKind = iota
	ValPrimitive
	ValLoadLocal
	ValLoadGlobal
	ValStoreLocal
	ValBinary
	ValUnary
	ValCall
	ValNew
	ValPropertyLoad
	ValPropertyStore
	ValComputedLoad
	ValComputedStore
	ValArray
	ValObject
	ValJSXElement
	ValJSXFragment
	ValUnsupported
)

type PrimitiveValue struct {
	Raw source.StringID
}

type LoadLocalValue struct {
	Place Place
}

type LoadGlobalValue struct {
	Name source.StringID
}

type StoreLocalValue struct {
	Lvalue Place
	Value  Place
}

type BinaryValue struct {
	Op    source.StringID
	Left  Place
	Right Place
}

type UnaryValue struct {
	Op  source.StringID
	Arg Place
}

type CallValue struct {
	Callee Place
	Args   []Place
}

type PropertyLoadValue struct {
	Object   Place
	Property source.StringID
}

type PropertyStoreValue struct {
	Object   Place
	Property source.StringID
	Value    Place
}

type ComputedLoadValue struct {
	Object Place
	Index  Place
}

type ComputedStoreValue struct {
	Object Place
	Index  Place
	Value  Place
}

type ArrayValue struct {
	Elements []Place
}

type ObjectEntry struct {
	Key   source.StringID
	Value Place
}

type ObjectValue struct {
	Entries []ObjectEntry
}

type JSXAttribute struct {
	Name  source.StringID
	Value Place
}

type JSXElementValue struct {
	Tag      Place
	TagName  source.StringID // set for host elements that load no binding
	Attrs    []JSXAttribute
	Children []Place
}

type JSXFragmentValue struct {
	Children []Place
}

// UnsupportedValue stands in for syntax the lowering does not model; the
// span points at the offending expression.
type UnsupportedValue struct {
	Span source.Span
}

// Value is a kind-discriminated instruction payload; only the field
// matching Kind is meaningful.
type Value struct {
	Kind ValueKind

	Primitive     PrimitiveValue
	LoadLocal     LoadLocalValue
	LoadGlobal    LoadGlobalValue
	StoreLocal    StoreLocalValue
	Binary        BinaryValue
	Unary         UnaryValue
	Call          CallValue
	New           CallValue
	PropertyLoad  PropertyLoadValue
	PropertyStore PropertyStoreValue
	ComputedLoad  ComputedLoadValue
	ComputedStore ComputedStoreValue
	Array         ArrayValue
	Object        ObjectValue
	JSXElement    JSXElementValue
	JSXFragment   JSXFragmentValue
	Unsupported   UnsupportedValue
}

// Instruction computes Value into the Lvalue destination.
type Instruction struct {
	ID     InstrID
	Lvalue Place
	Value  Value
	Span   source.Span
}
