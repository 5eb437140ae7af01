package ast

import (
	"jsir/internal/source"
)

type PatKind uint8

const (
	PatInvalid PatKind = iota
	PatIdent
	PatArray
	PatObject
	PatRest
	PatAssign
)

type IdentPat struct {
	Name source.StringID
}

type ArrayPat struct {
	Elements []PatID // NoPatID marks a hole
}

type ObjectPatProp struct {
	Key      ExprID // unused when IsRest
	Computed bool
	Value    PatID
	IsRest   bool
	Span     source.Span
}

type ObjectPat struct {
	Props []ObjectPatProp
}

type RestPat struct {
	Arg PatID
}

type AssignPat struct {
	Left  PatID
	Right ExprID // default value
}

// Pat is a kind-discriminated binding/assignment pattern node.
type Pat struct {
	Kind PatKind
	Span source.Span

	Ident  IdentPat
	Array  ArrayPat
	Object ObjectPat
	Rest   RestPat
	Assign AssignPat
}
