package sema

import (
	"jsir/internal/ast"
	"jsir/internal/diag"
)

func (a *analyzer) visitStmt(id ast.StmtID) {
	stmt := a.tree.Stmt(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		scope := a.enter(ScopeBlock, func() {
			for _, s := range stmt.Block.Body {
				a.visitStmt(s)
			}
		})
		a.table.NodeScopes[ast.StmtRef(id)] = scope

	case ast.StmtVarDecl:
		kind := declKindOf(stmt.VarDecl.DeclKind)
		for _, decl := range stmt.VarDecl.Decls {
			a.declarePattern(decl.Pat, kind)
			if decl.Init.IsValid() {
				a.visitExpr(decl.Init)
			}
		}

	case ast.StmtFuncDecl:
		fn := a.tree.Fn(stmt.FuncDecl.Fn)
		if fn.NamePat.IsValid() {
			a.declareIdent(fn.NamePat, DeclFunction)
		}
		a.visitFunction(stmt.FuncDecl.Fn, false)

	case ast.StmtExpr:
		a.visitExpr(stmt.Expr.Expr)

	case ast.StmtIf:
		a.visitExpr(stmt.If.Test)
		a.visitStmt(stmt.If.Cons)
		if stmt.If.Alt.IsValid() {
			a.visitStmt(stmt.If.Alt)
		}

	case ast.StmtFor:
		a.visitFor(id, stmt)

	case ast.StmtForIn, ast.StmtForOf:
		a.visitForEach(id, stmt)

	case ast.StmtWhile:
		label := a.table.AddAnonymousLabel(a.current, LabelLoop)
		a.table.NodeLabels[ast.StmtRef(id)] = label
		a.visitExpr(stmt.While.Test)
		a.enterLabel(label, func() {
			a.visitStmt(stmt.While.Body)
		})

	case ast.StmtDoWhile:
		label := a.table.AddAnonymousLabel(a.current, LabelLoop)
		a.table.NodeLabels[ast.StmtRef(id)] = label
		a.enterLabel(label, func() {
			a.visitStmt(stmt.DoWhile.Body)
		})
		a.visitExpr(stmt.DoWhile.Test)

	case ast.StmtSwitch:
		a.visitExpr(stmt.Switch.Disc)
		label := a.table.AddAnonymousLabel(a.current, LabelOther)
		a.table.NodeLabels[ast.StmtRef(id)] = label
		a.enterLabel(label, func() {
			scope := a.enter(ScopeSwitch, func() {
				for _, c := range stmt.Switch.Cases {
					if c.Test.IsValid() {
						a.visitExpr(c.Test)
					}
					for _, s := range c.Body {
						a.visitStmt(s)
					}
				}
			})
			a.table.NodeScopes[ast.StmtRef(id)] = scope
		})

	case ast.StmtBreak:
		label := a.lookupLabel(stmt.Branch.Label)
		if label == nil {
			a.table.report(diag.SemaNonSyntacticBreak, stmt.Span,
				"Non-syntactic break, could not resolve break target")
			return
		}
		a.table.NodeLabels[ast.StmtRef(id)] = label.ID

	case ast.StmtContinue:
		label := a.lookupLabel(stmt.Branch.Label)
		if label == nil {
			a.table.report(diag.SemaNonSyntacticCont, stmt.Span,
				"Non-syntactic continue, could not resolve continue target")
			return
		}
		if label.Kind != LabelLoop {
			a.table.report(diag.SemaContinueNotLoop, stmt.Span,
				"Invalid continue statement, the named label must be for a loop")
		}
		// the association is recorded even when the label kind is wrong,
		// so downstream consumers see a consistent graph
		a.table.NodeLabels[ast.StmtRef(id)] = label.ID

	case ast.StmtLabeled:
		kind := LabelOther
		if body := a.tree.Stmt(stmt.Labeled.Body); body != nil && body.IsLoop() {
			kind = LabelLoop
		}
		label := a.table.AddLabel(a.current, kind, stmt.Labeled.Label)
		a.table.NodeLabels[ast.StmtRef(id)] = label
		a.enterLabel(label, func() {
			a.visitStmt(stmt.Labeled.Body)
		})

	case ast.StmtReturn:
		if stmt.Return.Arg.IsValid() {
			a.visitExpr(stmt.Return.Arg)
		}

	case ast.StmtTry:
		a.visitStmt(stmt.Try.Block)
		if stmt.Try.HasCatch {
			scope := a.enter(ScopeCatch, func() {
				if stmt.Try.CatchParam.IsValid() {
					a.declarePattern(stmt.Try.CatchParam, DeclCatchParam)
				}
				a.visitStmt(stmt.Try.CatchBody)
			})
			a.table.NodeScopes[ast.StmtRef(id)] = scope
		}
		if stmt.Try.Finally.IsValid() {
			a.visitStmt(stmt.Try.Finally)
		}

	case ast.StmtImport:
		a.visitImport(stmt)

	case ast.StmtThrow:
		a.visitExpr(stmt.Throw.Arg)

	case ast.StmtEmpty:
		// nothing to do
	}
}

// visitInline visits a block statement's children in the current scope
// instead of opening a fresh one. Function bodies use it so parameters and
// top-level declarations share the function scope.
func (a *analyzer) visitInline(id ast.StmtID) {
	stmt := a.tree.Stmt(id)
	if stmt == nil {
		return
	}
	if stmt.Kind != ast.StmtBlock {
		a.visitStmt(id)
		return
	}
	for _, s := range stmt.Block.Body {
		a.visitStmt(s)
	}
}

func (a *analyzer) visitFor(id ast.StmtID, stmt *ast.Stmt) {
	a.withLoopScope(id, stmt.For.InitStmt, func() {
		if stmt.For.InitStmt.IsValid() {
			a.visitStmt(stmt.For.InitStmt)
		} else if stmt.For.InitExpr.IsValid() {
			a.visitExpr(stmt.For.InitExpr)
		}
		if stmt.For.Test.IsValid() {
			a.visitExpr(stmt.For.Test)
		}
		if stmt.For.Update.IsValid() {
			a.visitExpr(stmt.For.Update)
		}
		// Minted here so the label lives in the For scope when the
		// init opened one.
		label := a.table.AddAnonymousLabel(a.current, LabelLoop)
		a.table.NodeLabels[ast.StmtRef(id)] = label
		a.enterLabel(label, func() {
			a.visitStmt(stmt.For.Body)
		})
	})
}

func (a *analyzer) visitForEach(id ast.StmtID, stmt *ast.Stmt) {
	a.withLoopScope(id, stmt.ForEach.LeftStmt, func() {
		if stmt.ForEach.LeftStmt.IsValid() {
			a.visitStmt(stmt.ForEach.LeftStmt)
		} else if stmt.ForEach.LeftPat.IsValid() {
			a.assignPattern(stmt.ForEach.LeftPat)
		}
		a.visitExpr(stmt.ForEach.Right)
		label := a.table.AddAnonymousLabel(a.current, LabelLoop)
		a.table.NodeLabels[ast.StmtRef(id)] = label
		a.enterLabel(label, func() {
			a.visitStmt(stmt.ForEach.Body)
		})
	})
}

// withLoopScope opens a For scope only when the loop declares block-scoped
// bindings. A var declaration (or a bare assignment head) binds in the
// enclosing scope, so no extra scope is needed.
func (a *analyzer) withLoopScope(id ast.StmtID, init ast.StmtID, f func()) {
	scoped := false
	if decl := a.tree.Stmt(init); decl != nil && decl.Kind == ast.StmtVarDecl {
		scoped = decl.VarDecl.DeclKind.BlockScoped()
	}
	if !scoped {
		f()
		return
	}
	scope := a.enter(ScopeFor, f)
	a.table.NodeScopes[ast.StmtRef(id)] = scope
}

// visitImport declares import locals. Imports nested in any inner scope are
// diagnosed, but the bindings still land in the current scope so later
// references resolve during recovery.
func (a *analyzer) visitImport(stmt *ast.Stmt) {
	if a.current != a.table.Root() {
		a.table.report(diag.SemaImportPlacement, stmt.Span,
			"`import` declarations are only allowed at the top-level of a module")
	}
	for _, spec := range stmt.Import.Specs {
		if spec.Local.IsValid() {
			a.declareIdent(spec.Local, DeclImport)
		}
	}
}

func declKindOf(kind ast.VarKind) DeclKind {
	switch kind {
	case ast.VarLet:
		return DeclLet
	case ast.VarConst:
		return DeclConst
	default:
		return DeclVar
	}
}
