package ast

import (
	"jsir/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprThis
	ExprSuper
	ExprMember
	ExprAssign
	ExprUpdate
	ExprCall
	ExprNew
	ExprBinary
	ExprUnary
	ExprCond
	ExprArray
	ExprObject
	ExprFunc
	ExprArrow
	ExprSeq
	ExprSpread
	ExprTemplate
	ExprJSXElement
	ExprJSXFragment
	ExprJSXIdent
)

type IdentExpr struct {
	Name source.StringID
}

type LitExpr struct {
	Raw source.StringID
}

type MemberExpr struct {
	Object   ExprID
	Property ExprID
	Computed bool
}

// AssignOp separates plain assignment from the compound forms; the analyzer
// treats them differently.
type AssignOp uint8

const (
	AssignEq AssignOp = iota
	AssignCompound
)

type AssignExpr struct {
	Op         AssignOp
	OpRaw      source.StringID // "=", "+=", ...
	TargetPat  PatID           // pattern-shaped left-hand side, or
	TargetExpr ExprID          // expression left-hand side (member chains)
	Right      ExprID
}

type UpdateExpr struct {
	Arg    ExprID
	OpRaw  source.StringID // "++" or "--"
	Prefix bool
}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

type BinaryExpr struct {
	Op    source.StringID
	Left  ExprID
	Right ExprID
}

type UnaryExpr struct {
	Op  source.StringID
	Arg ExprID
}

type CondExpr struct {
	Test ExprID
	Cons ExprID
	Alt  ExprID
}

type ArrayExpr struct {
	Elements []ExprID // NoExprID marks a hole
}

type ObjectProp struct {
	Key      ExprID
	Value    ExprID
	Computed bool
	IsSpread bool
	Span     source.Span
}

type ObjectExpr struct {
	Props []ObjectProp
}

type FuncExpr struct {
	Fn FnID
}

type SeqExpr struct {
	Exprs []ExprID
}

type SpreadExpr struct {
	Arg ExprID
}

type TemplateExpr struct {
	Exprs []ExprID // interpolated expressions, in order
}

// JSXNameKind mirrors the three element-name forms.
type JSXNameKind uint8

const (
	JSXNameIdent JSXNameKind = iota
	JSXNameMember
	JSXNameNamespaced
)

// JSXName is an opening-element name. Root is the leftmost identifier as a
// JSXIdent expression node; Full is the complete dotted/namespaced text.
type JSXName struct {
	Kind JSXNameKind
	Root ExprID
	Full source.StringID
	Span source.Span
}

type JSXAttr struct {
	Name     source.StringID
	Value    ExprID // optional; the spread expression when IsSpread
	IsSpread bool
	Span     source.Span
}

type JSXElementExpr struct {
	Name     JSXName
	Attrs    []JSXAttr
	Children []ExprID
}

type JSXFragmentExpr struct {
	Children []ExprID
}

// Expr is a kind-discriminated expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Ident       IdentExpr
	Lit         LitExpr
	Member      MemberExpr
	Assign      AssignExpr
	Update      UpdateExpr
	Call        CallExpr
	Binary      BinaryExpr
	Unary       UnaryExpr
	Cond        CondExpr
	Array       ArrayExpr
	Object      ObjectExpr
	Func        FuncExpr
	Seq         SeqExpr
	Spread      SpreadExpr
	Template    TemplateExpr
	JSXElement  JSXElementExpr
	JSXFragment JSXFragmentExpr
	JSXIdent    IdentExpr
}
