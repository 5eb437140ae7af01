package diagfmt

import (
	"strings"
	"testing"

	"jsir/internal/diag"
	"jsir/internal/source"
)

func testBag(fs *source.FileSet) *diag.Bag {
	file := fs.AddVirtual("app/main.json", []byte("let x = 1;\nlet y = z;\n"))
	bag := diag.NewBag(16)
	bag.Add(diag.NewError(diag.SemaUndefinedVariable,
		source.Span{File: file, Start: 19, End: 20},
		"Undefined variable"))
	bag.Add(diag.New(diag.SevWarning, diag.HirUnsupportedSyntax,
		source.Span{File: file, Start: 0, End: 3},
		"Unsupported syntax: example"))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	fs := source.NewFileSet()
	bag := testBag(fs)
	bag.Sort()

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowSource: true})
	out := sb.String()

	if !strings.Contains(out, "app/main.json:2:9: ERROR SEMA3002: Undefined variable") {
		t.Fatalf("missing header line in output:\n%s", out)
	}
	if !strings.Contains(out, "let y = z;") {
		t.Fatalf("missing source line in output:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret in output:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("color escapes present in plain output:\n%s", out)
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("t.json", []byte("abc def\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaDuplicateDecl,
		source.Span{File: file, Start: 4, End: 7}, "Duplicate declaration"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowSource: true})

	lines := strings.Split(sb.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected 3 output lines, got %q", sb.String())
	}
	underline := lines[2]
	if !strings.HasSuffix(underline, "    ^~~") {
		t.Fatalf("underline misaligned: %q", underline)
	}
}

func TestShortOneLinePerDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	bag := testBag(fs)

	var sb strings.Builder
	Short(&sb, bag, fs, PathModeBasename)
	out := strings.TrimRight(sb.String(), "\n")

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "main.json:") {
		t.Fatalf("basename path mode not applied: %q", lines[0])
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	bag := testBag(fs)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	if len(out.Diagnostics) != 2 {
		t.Fatalf("len(Diagnostics) = %d, want 2", len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Code != "SEMA3002" {
		t.Fatalf("Code = %q, want SEMA3002", first.Code)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 9 {
		t.Fatalf("position = %d:%d, want 2:9", first.Location.StartLine, first.Location.StartCol)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	bag := testBag(fs)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if len(out.Diagnostics) != 1 {
		t.Fatalf("len(Diagnostics) = %d, want 1", len(out.Diagnostics))
	}
	if out.Count != 2 {
		t.Fatalf("Count should report the full bag size, got %d", out.Count)
	}
}
