package sema

import (
	"fmt"

	"jsir/internal/ast"
	"jsir/internal/diag"
	"jsir/internal/source"
)

func (a *analyzer) visitExpr(id ast.ExprID) {
	expr := a.tree.Expr(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		a.reference(ast.ExprRef(id), expr.Ident.Name, RefRead, expr.Span)

	case ast.ExprLit, ast.ExprThis, ast.ExprSuper, ast.ExprJSXIdent:
		// literals and this/super never reference bindings; JSX identifiers
		// only count through an element name, handled below

	case ast.ExprMember:
		a.visitExpr(expr.Member.Object)
		if expr.Member.Computed {
			a.visitExpr(expr.Member.Property)
		}

	case ast.ExprAssign:
		a.visitAssign(expr)

	case ast.ExprUpdate:
		a.visitUpdateTarget(expr.Update.Arg, expr.Update.OpRaw)

	case ast.ExprCall, ast.ExprNew:
		a.visitExpr(expr.Call.Callee)
		for _, arg := range expr.Call.Args {
			a.visitExpr(arg)
		}

	case ast.ExprBinary:
		a.visitExpr(expr.Binary.Left)
		a.visitExpr(expr.Binary.Right)

	case ast.ExprUnary:
		a.visitExpr(expr.Unary.Arg)

	case ast.ExprCond:
		a.visitExpr(expr.Cond.Test)
		a.visitExpr(expr.Cond.Cons)
		a.visitExpr(expr.Cond.Alt)

	case ast.ExprArray:
		for _, el := range expr.Array.Elements {
			if el.IsValid() {
				a.visitExpr(el)
			}
		}

	case ast.ExprObject:
		for _, prop := range expr.Object.Props {
			if !prop.IsSpread && prop.Computed {
				a.visitExpr(prop.Key)
			}
			a.visitExpr(prop.Value)
		}

	case ast.ExprFunc, ast.ExprArrow:
		a.visitFunction(expr.Func.Fn, true)

	case ast.ExprSeq:
		for _, e := range expr.Seq.Exprs {
			a.visitExpr(e)
		}

	case ast.ExprSpread:
		a.visitExpr(expr.Spread.Arg)

	case ast.ExprTemplate:
		for _, e := range expr.Template.Exprs {
			a.visitExpr(e)
		}

	case ast.ExprJSXElement:
		a.visitJSXName(expr.JSXElement.Name)
		for _, attr := range expr.JSXElement.Attrs {
			if attr.Value.IsValid() {
				a.visitExpr(attr.Value)
			}
		}
		for _, child := range expr.JSXElement.Children {
			a.visitExpr(child)
		}

	case ast.ExprJSXFragment:
		for _, child := range expr.JSXFragment.Children {
			a.visitExpr(child)
		}
	}
}

// visitAssign distinguishes plain from compound assignment. A plain target
// may be any pattern or a member chain; a compound target must be a lone
// identifier (a read-write reference) or a member chain.
func (a *analyzer) visitAssign(expr *ast.Expr) {
	as := &expr.Assign
	switch {
	case as.Op == ast.AssignEq && as.TargetPat.IsValid():
		a.assignPattern(as.TargetPat)

	case as.Op == ast.AssignEq && as.TargetExpr.IsValid():
		if target := a.tree.Expr(as.TargetExpr); target != nil && target.Kind == ast.ExprMember {
			a.visitExpr(as.TargetExpr)
		} else {
			a.table.report(diag.SemaInvalidAssignTarget, expr.Span,
				"Invalid AssignmentExpression, expected left-hand side to be a Pattern or MemberExpression")
		}

	case as.TargetPat.IsValid():
		pat := a.tree.Pat(as.TargetPat)
		if pat != nil && pat.Kind == ast.PatIdent {
			a.reference(ast.PatRef(as.TargetPat), pat.Ident.Name, RefReadWrite, pat.Span)
		} else {
			a.table.report(diag.SemaInvalidAssignTarget, expr.Span, fmt.Sprintf(
				"Expected AssignmentExpression.left to be an Identifier when using operator %s",
				a.tree.Name(as.OpRaw)))
		}

	case as.TargetExpr.IsValid():
		a.visitUpdateTarget(as.TargetExpr, as.OpRaw)

	default:
		a.table.report(diag.SemaInvalidAssignTarget, expr.Span,
			"Invalid AssignmentExpression, expected left-hand side to be a Pattern or MemberExpression")
	}
	a.visitExpr(as.Right)
}

// visitUpdateTarget handles the operand of ++/-- and of compound assignment
// when the parser surfaced it as an expression. Identifiers become
// read-write references; member chains are visited as reads.
func (a *analyzer) visitUpdateTarget(id ast.ExprID, opRaw source.StringID) {
	target := a.tree.Expr(id)
	if target == nil {
		return
	}
	switch target.Kind {
	case ast.ExprIdent:
		a.reference(ast.ExprRef(id), target.Ident.Name, RefReadWrite, target.Span)
	case ast.ExprMember:
		a.visitExpr(id)
	default:
		a.table.report(diag.SemaInvalidAssignTarget, target.Span, fmt.Sprintf(
			"Expected AssignmentExpression.left to be an Identifier when using operator %s",
			a.tree.Name(opRaw)))
	}
}

// visitJSXName applies the component naming rule: a lowercase leading
// character marks a host element, anything else references a binding in
// scope. Member and namespaced names are judged by their root identifier.
func (a *analyzer) visitJSXName(name ast.JSXName) {
	root := a.tree.Expr(name.Root)
	if root == nil || root.Kind != ast.ExprJSXIdent {
		a.table.report(diag.SemaInvalidJSXName, name.Span,
			"Expected JSXOpeningElement.name to be non-empty")
		return
	}
	text := a.tree.Name(root.JSXIdent.Name)
	if text == "" {
		a.table.report(diag.SemaInvalidJSXName, name.Span,
			"Expected JSXOpeningElement.name to be non-empty")
		return
	}
	if text == "this" || (text[0] >= 'a' && text[0] <= 'z') {
		return
	}
	a.reference(ast.ExprRef(name.Root), root.JSXIdent.Name, RefRead, root.Span)
}
