package lower

import (
	"jsir/internal/ast"
	"jsir/internal/diag"
	"jsir/internal/hir"
	"jsir/internal/sema"
)

func (l *lowerer) stmt(id ast.StmtID) {
	stmt := l.tree.Stmt(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		for _, s := range stmt.Block.Body {
			l.stmt(s)
		}

	case ast.StmtVarDecl:
		for _, decl := range stmt.VarDecl.Decls {
			l.varDeclarator(decl)
		}

	case ast.StmtFuncDecl:
		fn := l.tree.Fn(stmt.FuncDecl.Fn)
		value := l.unsupported(stmt.Span, "function declaration body")
		if fn.NamePat.IsValid() {
			l.storePattern(fn.NamePat, value)
		}

	case ast.StmtExpr:
		l.expr(stmt.Expr.Expr)

	case ast.StmtIf:
		l.ifStmt(stmt)

	case ast.StmtFor:
		l.forStmt(id, stmt)

	case ast.StmtWhile:
		l.whileStmt(id, stmt)

	case ast.StmtDoWhile:
		l.doWhileStmt(id, stmt)

	case ast.StmtBreak:
		targets, ok := l.branchTargets(id)
		if !ok {
			diag.Error(l.rep, diag.HirUnresolvedLoopSite, stmt.Span,
				"Could not resolve break target")
			return
		}
		l.b.Terminate(hir.Terminal{
			Kind: hir.TermGoto,
			Goto: hir.GotoTerm{Block: targets.breakTo, Kind: hir.GotoBreak},
		}, hir.BlockDefault)

	case ast.StmtContinue:
		targets, ok := l.branchTargets(id)
		if !ok || !targets.hasContinue {
			diag.Error(l.rep, diag.HirUnresolvedLoopSite, stmt.Span,
				"Could not resolve continue target")
			return
		}
		l.b.Terminate(hir.Terminal{
			Kind: hir.TermGoto,
			Goto: hir.GotoTerm{Block: targets.continueTo, Kind: hir.GotoContinue},
		}, hir.BlockDefault)

	case ast.StmtLabeled:
		// a named label wrapping a loop shares the loop's jump targets;
		// the loop lowering picks the pending name up and registers both
		if body := l.tree.Stmt(stmt.Labeled.Body); body != nil && body.IsLoop() {
			l.extraLabels = append(l.extraLabels, l.labelOf(id))
			l.stmt(stmt.Labeled.Body)
		} else {
			l.unsupported(stmt.Span, "labeled non-loop statement")
			l.stmt(stmt.Labeled.Body)
		}

	case ast.StmtReturn:
		term := hir.Terminal{Kind: hir.TermReturn}
		if stmt.Return.Arg.IsValid() {
			term.Return.HasValue = true
			term.Return.Value = l.expr(stmt.Return.Arg)
		}
		l.b.Terminate(term, hir.BlockDefault)

	case ast.StmtSwitch:
		l.expr(stmt.Switch.Disc)
		l.unsupported(stmt.Span, "switch statement")

	case ast.StmtForIn, ast.StmtForOf:
		l.expr(stmt.ForEach.Right)
		l.unsupported(stmt.Span, "for-in/for-of statement")

	case ast.StmtTry:
		l.unsupported(stmt.Span, "try statement")

	case ast.StmtThrow:
		l.expr(stmt.Throw.Arg)
		l.unsupported(stmt.Span, "throw statement")

	case ast.StmtImport, ast.StmtEmpty:
		// imports only declare bindings; nothing executes
	}
}

func (l *lowerer) varDeclarator(decl ast.VarDeclarator) {
	pat := l.tree.Pat(decl.Pat)
	if pat == nil {
		return
	}
	var value hir.Place
	if decl.Init.IsValid() {
		value = l.expr(decl.Init)
	} else {
		value = l.emit(hir.Value{Kind: hir.ValPrimitive}, pat.Span)
	}
	l.storePattern(decl.Pat, value)
}

// storePattern assigns value to a binding pattern. Destructuring beyond a
// plain identifier is not modeled yet.
func (l *lowerer) storePattern(patID ast.PatID, value hir.Place) {
	pat := l.tree.Pat(patID)
	if pat == nil {
		return
	}
	if pat.Kind != ast.PatIdent {
		l.unsupported(pat.Span, "destructuring pattern")
		return
	}
	lvalue, ok := l.placeFor(ast.PatRef(patID), pat.Ident.Name, pat.Span, true)
	if !ok {
		// No binding resolved for the target; park the value in a
		// temporary so lowering can continue.
		l.rep.Report(diag.New(diag.SevWarning, diag.HirUnresolvedBinding, pat.Span,
			"store target has no resolved binding, storing to a temporary"))
		lvalue = hir.Place{Ident: l.b.MakeTemporary(), Span: pat.Span}
	}
	l.emit(hir.Value{
		Kind:       hir.ValStoreLocal,
		StoreLocal: hir.StoreLocalValue{Lvalue: lvalue, Value: value},
	}, pat.Span)
}

func (l *lowerer) ifStmt(stmt *ast.Stmt) {
	test := l.expr(stmt.If.Test)
	cons := l.b.Reserve()
	alt := hir.NoBlockID
	if stmt.If.Alt.IsValid() {
		alt = l.b.Reserve()
	}
	join := l.b.Reserve()

	ifAlt := alt
	if !ifAlt.IsValid() {
		ifAlt = join
	}
	l.b.TerminateAs(cons, hir.Terminal{
		Kind: hir.TermIf,
		If:   hir.IfTerm{Test: test, Consequent: cons, Alternate: ifAlt, Fallthrough: join},
	}, hir.BlockDefault)

	l.stmt(stmt.If.Cons)
	if alt.IsValid() {
		l.b.TerminateAs(alt, l.gotoTerm(join, hir.GotoBreak), hir.BlockDefault)
		l.stmt(stmt.If.Alt)
	}
	l.b.TerminateAs(join, l.gotoTerm(join, hir.GotoBreak), hir.BlockDefault)
}

func (l *lowerer) forStmt(id ast.StmtID, stmt *ast.Stmt) {
	init := l.b.Reserve()
	body := l.b.Reserve()
	update := hir.NoBlockID
	if stmt.For.Update.IsValid() {
		update = l.b.Reserve()
	}
	fall := l.b.Reserve()

	l.b.TerminateAs(init, hir.Terminal{
		Kind: hir.TermFor,
		For:  hir.ForTerm{Init: init, Body: body, Update: update, Fallthrough: fall},
	}, hir.BlockDefault)

	if stmt.For.InitStmt.IsValid() {
		l.stmt(stmt.For.InitStmt)
	} else if stmt.For.InitExpr.IsValid() {
		l.expr(stmt.For.InitExpr)
	}
	l.b.TerminateAs(body, l.gotoTerm(body, hir.GotoContinue), hir.BlockLoop)

	continueTo := body
	afterBody := fall
	if update.IsValid() {
		continueTo = update
		afterBody = update
	}
	l.loopBody(id, stmt.For.Test, stmt.For.Body, afterBody, loopTargets{
		breakTo:     fall,
		continueTo:  continueTo,
		hasContinue: true,
	})
	if update.IsValid() {
		l.expr(stmt.For.Update)
		l.b.TerminateAs(fall, l.gotoTerm(body, hir.GotoContinue), hir.BlockDefault)
	}
}

// whileStmt lowers while as a for with an empty init block.
func (l *lowerer) whileStmt(id ast.StmtID, stmt *ast.Stmt) {
	init := l.b.Reserve()
	body := l.b.Reserve()
	fall := l.b.Reserve()

	l.b.TerminateAs(init, hir.Terminal{
		Kind: hir.TermFor,
		For:  hir.ForTerm{Init: init, Body: body, Fallthrough: fall},
	}, hir.BlockDefault)
	l.b.TerminateAs(body, l.gotoTerm(body, hir.GotoContinue), hir.BlockLoop)

	l.loopBody(id, stmt.While.Test, stmt.While.Body, fall, loopTargets{
		breakTo:     fall,
		continueTo:  body,
		hasContinue: true,
	})
}

func (l *lowerer) doWhileStmt(id ast.StmtID, stmt *ast.Stmt) {
	body := l.b.Reserve()
	test := l.b.Reserve()
	fall := l.b.Reserve()

	l.b.TerminateAs(body, hir.Terminal{
		Kind:    hir.TermDoWhile,
		DoWhile: hir.DoWhileTerm{Body: body, Test: test, Fallthrough: fall},
	}, hir.BlockLoop)

	l.withLoop(l.labelOf(id), loopTargets{breakTo: fall, continueTo: test, hasContinue: true}, func() {
		l.stmt(stmt.DoWhile.Body)
	})
	l.b.TerminateAs(test, l.gotoTerm(test, hir.GotoContinue), hir.BlockDefault)

	cond := l.expr(stmt.DoWhile.Test)
	l.b.TerminateAs(fall, hir.Terminal{
		Kind: hir.TermIf,
		If:   hir.IfTerm{Test: cond, Consequent: body, Alternate: fall},
	}, hir.BlockDefault)
}

// loopBody lowers the test-then-body shape shared by for and while. The
// open block must be the loop body head; after the body's back-edge goto,
// the block `next` (the update block or the loop fallthrough) is open.
func (l *lowerer) loopBody(id ast.StmtID, test ast.ExprID, body ast.StmtID, next hir.BlockID, targets loopTargets) {
	if test.IsValid() {
		cond := l.expr(test)
		rest := l.b.Reserve()
		l.b.TerminateAs(rest, hir.Terminal{
			Kind: hir.TermIf,
			If:   hir.IfTerm{Test: cond, Consequent: rest, Alternate: targets.breakTo},
		}, hir.BlockDefault)
	}
	l.withLoop(l.labelOf(id), targets, func() {
		l.stmt(body)
	})
	l.b.TerminateAs(next, l.gotoTerm(targets.continueTo, hir.GotoContinue), hir.BlockDefault)
}

func (l *lowerer) gotoTerm(target hir.BlockID, kind hir.GotoKind) hir.Terminal {
	return hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Block: target, Kind: kind}}
}

func (l *lowerer) labelOf(id ast.StmtID) sema.LabelID {
	if label, ok := l.table.NodeLabels[ast.StmtRef(id)]; ok {
		return label
	}
	return sema.NoLabelID
}
