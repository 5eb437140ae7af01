package lower

import (
	"strings"
	"testing"

	"jsir/internal/ast"
	"jsir/internal/diag"
	"jsir/internal/hir"
	"jsir/internal/sema"
	"jsir/internal/source"
)

// lowerJSON runs the full front half of the pipeline: decode, analyze,
// lower, finalize.
func lowerJSON(t *testing.T, src string) (*hir.Unit, *diag.Bag) {
	t.Helper()
	tree, err := ast.DecodeJSON(source.FileID(1), []byte(src), nil)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	table := sema.Analyze(tree, sema.DefaultOptions())
	// Analysis errors do not stop lowering; unresolved names become
	// global loads. Tests that care inspect the merged bag.
	diags := diag.NewBag(0)
	diags.Merge(table.Diags)
	unit := Module(tree, table, hir.NewEnvironment(), diags)
	if err := hir.Validate(unit); err != nil {
		t.Fatalf("Validate: %v\n%s", err, hir.DumpString(unit, tree.Strings))
	}
	return unit, diags
}

func program(stmts ...string) string {
	return `{"type":"Program","body":[` + strings.Join(stmts, ",") + `]}`
}

func exprStmt(expr string) string {
	return `{"type":"ExpressionStatement","expression":` + expr + `}`
}

func ident(name string) string {
	return `{"type":"Identifier","name":"` + name + `"}`
}

func lit(raw string) string {
	return `{"type":"Literal","raw":"` + raw + `"}`
}

func letDecl(name, init string) string {
	return `{"type":"VariableDeclaration","kind":"let","declarations":[
	  {"type":"VariableDeclarator","id":` + ident(name) + `,"init":` + init + `}]}`
}

func TestLowerStraightLine(t *testing.T) {
	unit, diags := lowerJSON(t, program(
		letDecl("x", lit("1")),
		exprStmt(`{"type":"BinaryExpression","operator":"+",
		  "left":`+ident("x")+`,"right":`+lit("2")+`}`),
	))
	if diags.Len() != 0 {
		t.Fatalf("diagnostics: %+v", diags.Items())
	}
	if unit.Blocks.Len() != 1 {
		t.Fatalf("block count = %d, want 1", unit.Blocks.Len())
	}
	entry := unit.Block(unit.Entry)
	if entry.Terminal.Kind != hir.TermReturn {
		t.Fatalf("terminal = %v, want return", entry.Terminal.Kind)
	}
	// primitive, store, load, primitive, binary
	if len(entry.Instrs) != 5 {
		t.Fatalf("instruction count = %d:\n%s", len(entry.Instrs), DumpStringOf(t, unit))
	}
}

func TestLowerSameBindingSharesCell(t *testing.T) {
	unit, _ := lowerJSON(t, program(
		letDecl("x", lit("1")),
		exprStmt(ident("x")),
		exprStmt(ident("x")),
	))
	var cells []*hir.IdentData
	unit.Blocks.Each(func(b *hir.BasicBlock) {
		for _, instr := range b.Instrs {
			if instr.Value.Kind == hir.ValLoadLocal {
				cells = append(cells, instr.Value.LoadLocal.Place.Ident.Data)
			}
		}
	})
	if len(cells) != 2 || cells[0] != cells[1] {
		t.Fatalf("uses of one binding must share an identifier cell, got %d cells", len(cells))
	}
}

func TestLowerGlobalLoads(t *testing.T) {
	unit, _ := lowerJSON(t, program(
		exprStmt(`{"type":"CallExpression","callee":`+ident("print")+`,
		  "arguments":[`+lit("1")+`]}`),
	))
	found := false
	unit.Blocks.Each(func(b *hir.BasicBlock) {
		for _, instr := range b.Instrs {
			if instr.Value.Kind == hir.ValLoadGlobal {
				found = true
			}
		}
	})
	if !found {
		t.Fatalf("unresolved callee should lower to a global load")
	}
}

func TestLowerIfElse(t *testing.T) {
	unit, diags := lowerJSON(t, program(
		letDecl("x", lit("1")),
		`{"type":"IfStatement","test":`+ident("x")+`,
		  "consequent":{"type":"BlockStatement","body":[`+exprStmt(lit("1"))+`]},
		  "alternate":{"type":"BlockStatement","body":[`+exprStmt(lit("2"))+`]}}`,
	))
	if diags.Len() != 0 {
		t.Fatalf("diagnostics: %+v", diags.Items())
	}
	entry := unit.Block(unit.Entry)
	if entry.Terminal.Kind != hir.TermIf {
		t.Fatalf("entry terminal = %v, want if", entry.Terminal.Kind)
	}
	join := entry.Terminal.If.Fallthrough
	if !join.IsValid() || !unit.Blocks.Contains(join) {
		t.Fatalf("if fallthrough missing: %+v", entry.Terminal.If)
	}
	jb := unit.Block(join)
	if len(jb.Preds) != 2 {
		t.Fatalf("join predecessors = %v, want both arms", jb.Preds)
	}
}

// for (let i = 0; ; i = i + 1) { return; } — the update can never run, so
// finalization clears the edge and drops the block.
func TestLowerForWithUnreachableUpdate(t *testing.T) {
	unit, _ := lowerJSON(t, program(
		`{"type":"ForStatement",
		  "init":`+letDecl("i", lit("0"))+`,
		  "update":{"type":"AssignmentExpression","operator":"=",
		    "left":`+ident("i")+`,
		    "right":{"type":"BinaryExpression","operator":"+",
		      "left":`+ident("i")+`,"right":`+lit("1")+`}},
		  "body":{"type":"BlockStatement","body":[{"type":"ReturnStatement"}]}}`,
	))
	var forTerm *hir.ForTerm
	unit.Blocks.Each(func(b *hir.BasicBlock) {
		if b.Terminal.Kind == hir.TermFor {
			forTerm = &b.Terminal.For
		}
	})
	if forTerm == nil {
		t.Fatalf("no for terminal in unit")
	}
	if forTerm.Update.IsValid() {
		t.Fatalf("update edge survived: bb%d", forTerm.Update)
	}
}

// do { return; } while (x): the test block is unreachable and the
// do-while terminal degrades to a break goto targeting the body.
func TestLowerDoWhileDegrades(t *testing.T) {
	unit, _ := lowerJSON(t, program(
		letDecl("x", lit("1")),
		`{"type":"DoWhileStatement",
		  "body":{"type":"BlockStatement","body":[{"type":"ReturnStatement"}]},
		  "test":`+ident("x")+`}`,
	))
	sawDoWhile := false
	sawBreakGoto := false
	unit.Blocks.Each(func(b *hir.BasicBlock) {
		switch b.Terminal.Kind {
		case hir.TermDoWhile:
			sawDoWhile = true
		case hir.TermGoto:
			if b.Terminal.Goto.Kind == hir.GotoBreak && unit.Block(b.Terminal.Goto.Block).Kind == hir.BlockLoop {
				sawBreakGoto = true
			}
		}
	})
	if sawDoWhile {
		t.Fatalf("do-while terminal survived an unreachable test")
	}
	if !sawBreakGoto {
		t.Fatalf("expected a degraded break goto to the loop body")
	}
}

func TestLowerLabeledBreak(t *testing.T) {
	unit, diags := lowerJSON(t, program(
		letDecl("a", lit("1")),
		`{"type":"LabeledStatement","label":`+ident("outer")+`,
		  "body":{"type":"WhileStatement","test":`+ident("a")+`,
		    "body":{"type":"BlockStatement","body":[
		      {"type":"WhileStatement","test":`+ident("a")+`,
		        "body":{"type":"BlockStatement","body":[
		          {"type":"BreakStatement","label":`+ident("outer")+`}]}}]}}}`,
	))
	for _, d := range diags.Items() {
		if d.Code == diag.HirUnresolvedLoopSite {
			t.Fatalf("labeled break did not resolve: %+v", d)
		}
	}
	if err := hir.Validate(unit); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLowerUnresolvedStoreWarns(t *testing.T) {
	// Assigning to a name with no binding parks the value in a temporary
	// and reports a warning rather than dropping the statement.
	unit, diags := lowerJSON(t, program(
		exprStmt(`{"type":"AssignmentExpression","operator":"=",
		  "left":`+ident("y")+`,"right":`+lit("1")+`}`),
	))
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.HirUnresolvedBinding && d.Severity == diag.SevWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing unresolved-binding warning, got %+v", diags.Items())
	}
	stores := 0
	unit.Blocks.Each(func(b *hir.BasicBlock) {
		for _, instr := range b.Instrs {
			if instr.Value.Kind == hir.ValStoreLocal {
				stores++
			}
		}
	})
	if stores != 1 {
		t.Fatalf("store count = %d, want 1", stores)
	}
}

func TestLowerUnsupportedIsWarning(t *testing.T) {
	_, diags := lowerJSON(t, program(
		`{"type":"SwitchStatement","discriminant":`+lit("1")+`,"cases":[]}`,
	))
	if diags.Len() == 0 {
		t.Fatalf("expected an unsupported-syntax diagnostic")
	}
	if diags.HasErrors() {
		t.Fatalf("unsupported syntax must be a warning, got %+v", diags.Items())
	}
}

// DumpStringOf renders the unit for failure messages.
func DumpStringOf(t *testing.T, u *hir.Unit) string {
	t.Helper()
	return hir.DumpString(u, nil)
}
