package ast

import (
	"jsir/internal/source"
)

// Fn is the function payload shared by declarations, expressions, and
// arrows. NamePat is the identifier pattern of the (optional) name; Params
// keeps the parameter patterns in order. Exactly one of HasBlockBody and an
// expression body applies.
type Fn struct {
	NamePat      PatID // optional
	Params       []PatID
	HasBlockBody bool
	Body         []StmtID // block body statements
	ExprBody     ExprID   // arrow concise body
	IsArrow      bool
	Span         source.Span
}

// Hints provide optional capacity suggestions for the tree arenas.
type Hints struct{ Stmts, Exprs, Pats, Fns uint }

// Tree owns one parsed program: the top-level statement list plus the
// arenas every node lives in. A Tree is immutable once construction ends.
type Tree struct {
	File    source.FileID
	Span    source.Span
	Body    []StmtID
	Strings *source.Interner

	stmts *Arena[Stmt]
	exprs *Arena[Expr]
	pats  *Arena[Pat]
	fns   *Arena[Fn]
}

// NewTree creates an empty tree. If strings is nil a fresh interner is
// allocated.
func NewTree(file source.FileID, hints Hints, strings *source.Interner) *Tree {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Pats == 0 {
		hints.Pats = 1 << 6
	}
	if hints.Fns == 0 {
		hints.Fns = 1 << 4
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Tree{
		File:    file,
		Strings: strings,
		stmts:   NewArena[Stmt](hints.Stmts),
		exprs:   NewArena[Expr](hints.Exprs),
		pats:    NewArena[Pat](hints.Pats),
		fns:     NewArena[Fn](hints.Fns),
	}
}

func (t *Tree) Stmt(id StmtID) *Stmt { return t.stmts.Get(uint32(id)) }
func (t *Tree) Expr(id ExprID) *Expr { return t.exprs.Get(uint32(id)) }
func (t *Tree) Pat(id PatID) *Pat    { return t.pats.Get(uint32(id)) }
func (t *Tree) Fn(id FnID) *Fn       { return t.fns.Get(uint32(id)) }

func (t *Tree) NewStmt(s Stmt) StmtID { return StmtID(t.stmts.Allocate(s)) }
func (t *Tree) NewExpr(e Expr) ExprID { return ExprID(t.exprs.Allocate(e)) }
func (t *Tree) NewPat(p Pat) PatID    { return PatID(t.pats.Allocate(p)) }
func (t *Tree) NewFn(f Fn) FnID       { return FnID(t.fns.Allocate(f)) }

// Name resolves an interned name for error messages.
func (t *Tree) Name(id source.StringID) string {
	s, _ := t.Strings.Lookup(id)
	return s
}

// SpanOf returns the span of any node the ref points at.
func (t *Tree) SpanOf(ref NodeRef) source.Span {
	switch ref.Class {
	case NodeStmt:
		if s := t.Stmt(StmtID(ref.Index)); s != nil {
			return s.Span
		}
	case NodeExpr:
		if e := t.Expr(ExprID(ref.Index)); e != nil {
			return e.Span
		}
	case NodePat:
		if p := t.Pat(PatID(ref.Index)); p != nil {
			return p.Span
		}
	case NodeFn:
		if f := t.Fn(FnID(ref.Index)); f != nil {
			return f.Span
		}
	}
	return source.Span{File: t.File}
}

// Convenience constructors used by the decoder and by tests.

func (t *Tree) NewIdent(span source.Span, name string) ExprID {
	return t.NewExpr(Expr{Kind: ExprIdent, Span: span, Ident: IdentExpr{Name: t.Strings.Intern(name)}})
}

func (t *Tree) NewIdentPat(span source.Span, name string) PatID {
	return t.NewPat(Pat{Kind: PatIdent, Span: span, Ident: IdentPat{Name: t.Strings.Intern(name)}})
}

func (t *Tree) NewJSXIdent(span source.Span, name string) ExprID {
	return t.NewExpr(Expr{Kind: ExprJSXIdent, Span: span, JSXIdent: IdentExpr{Name: t.Strings.Intern(name)}})
}

func (t *Tree) NewBlock(span source.Span, body ...StmtID) StmtID {
	return t.NewStmt(Stmt{Kind: StmtBlock, Span: span, Block: BlockStmt{Body: body}})
}

func (t *Tree) NewExprStmt(span source.Span, expr ExprID) StmtID {
	return t.NewStmt(Stmt{Kind: StmtExpr, Span: span, Expr: ExprStmtData{Expr: expr}})
}

func (t *Tree) NewVarDecl(span source.Span, kind VarKind, decls ...VarDeclarator) StmtID {
	return t.NewStmt(Stmt{Kind: StmtVarDecl, Span: span, VarDecl: VarDeclStmt{DeclKind: kind, Decls: decls}})
}
