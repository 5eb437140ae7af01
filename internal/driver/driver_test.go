package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jsir/internal/diag"
	"jsir/internal/sema"
	"jsir/internal/source"
)

// Acorn output for:
//
//	let x = 1;
//	x;
const goodProgram = `{
  "type": "Program",
  "start": 0, "end": 14,
  "body": [
    {
      "type": "VariableDeclaration",
      "start": 0, "end": 10,
      "kind": "let",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "start": 4, "end": 9,
          "id": {"type": "Identifier", "start": 4, "end": 5, "name": "x"},
          "init": {"type": "Literal", "start": 8, "end": 9, "value": 1, "raw": "1"}
        }
      ]
    },
    {
      "type": "ExpressionStatement",
      "start": 11, "end": 13,
      "expression": {"type": "Identifier", "start": 11, "end": 12, "name": "x"}
    }
  ]
}`

// Acorn output for:
//
//	y;
const badProgram = `{
  "type": "Program",
  "start": 0, "end": 3,
  "body": [
    {
      "type": "ExpressionStatement",
      "start": 0, "end": 2,
      "expression": {"type": "Identifier", "start": 0, "end": 1, "name": "y"}
    }
  ]
}`

func defaultOpts() Options {
	return Options{Analyzer: sema.DefaultOptions(), Stage: StageLower}
}

func TestProcessSourceFullPipeline(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("good.json", []byte(goodProgram))

	res := ProcessSource(context.Background(), fs, id, defaultOpts())
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	if res.Table == nil || res.Unit == nil {
		t.Fatal("expected both analysis table and IR unit")
	}
	if res.Table.DeclCount() != 1 || res.Table.RefCount() != 1 {
		t.Fatalf("decls=%d refs=%d, want 1/1", res.Table.DeclCount(), res.Table.RefCount())
	}

	dump := DumpUnit(res)
	if !strings.Contains(dump, "return") {
		t.Fatalf("IR dump missing return terminal:\n%s", dump)
	}
}

func TestProcessSourceLowersPastSemaErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.json", []byte(badProgram))

	res := ProcessSource(context.Background(), fs, id, defaultOpts())
	if !res.HasErrors() {
		t.Fatal("expected an undefined-variable error")
	}

	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SemaUndefinedVariable {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing SemaUndefinedVariable, got %+v", res.Bag.Items())
	}

	// Diagnostics do not block lowering: the unresolved name lowers as a
	// global load and a unit still comes out.
	if res.Unit == nil {
		t.Fatal("expected a lowered unit despite analysis errors")
	}
	if !strings.Contains(DumpUnit(res), "global y") {
		t.Fatalf("expected a global load for the unresolved name:\n%s", DumpUnit(res))
	}
}

func TestProcessSourceAnalyzeStageOnly(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("good.json", []byte(goodProgram))

	opts := defaultOpts()
	opts.Stage = StageAnalyze
	res := ProcessSource(context.Background(), fs, id, opts)
	if res.Unit != nil {
		t.Fatal("analyze stage must not build IR")
	}
	if res.Table == nil {
		t.Fatal("analyze stage must produce a table")
	}
}

func TestProcessSourceDecodeFailure(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("broken.json", []byte("{not json"))

	res := ProcessSource(context.Background(), fs, id, defaultOpts())
	if !res.HasErrors() {
		t.Fatal("expected a decode error")
	}
	if res.Bag.Items()[0].Code != diag.ASTDecode {
		t.Fatalf("code = %v, want ASTDecode", res.Bag.Items()[0].Code)
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("a.json", goodProgram)
	write("b.json", badProgram)
	write("ignored.txt", "not a source file")

	fs := source.NewFileSet()
	results, err := ProcessDir(context.Background(), fs, dir, defaultOpts())
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	// Deterministic order: sorted by path.
	if filepath.Base(results[0].Path) != "a.json" {
		t.Fatalf("results[0] = %s, want a.json", results[0].Path)
	}
	if results[0].HasErrors() {
		t.Fatalf("a.json should be clean: %+v", results[0].Bag.Items())
	}
	if !results[1].HasErrors() {
		t.Fatal("b.json should carry an error")
	}
}

func TestProcessDirEmpty(t *testing.T) {
	fs := source.NewFileSet()
	results, err := ProcessDir(context.Background(), fs, t.TempDir(), defaultOpts())
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results for empty dir, got %d", len(results))
	}
}

func TestParseStage(t *testing.T) {
	if s, err := ParseStage("analyze"); err != nil || s != StageAnalyze {
		t.Fatalf("ParseStage(analyze) = %v, %v", s, err)
	}
	if s, err := ParseStage("lower"); err != nil || s != StageLower {
		t.Fatalf("ParseStage(lower) = %v, %v", s, err)
	}
	if _, err := ParseStage("link"); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}
