package source

import (
	"testing"
)

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("items")
	b := in.Intern("items")
	c := in.Intern("count")

	if a != b {
		t.Fatalf("expected same ID for repeated string, got %v and %v", a, b)
	}
	if a == c {
		t.Fatalf("expected distinct IDs for distinct strings")
	}
	if got := in.MustLookup(a); got != "items" {
		t.Fatalf("MustLookup = %q, want %q", got, "items")
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("expected lookup of unknown ID to fail")
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string should intern to NoStringID, got %v", id)
	}
}

func TestFileSetPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.js", []byte("let x = 1;\nlet y = 2;\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{4, LineCol{Line: 1, Col: 5}},
		{11, LineCol{Line: 2, Col: 1}},
		{15, LineCol{Line: 2, Col: 5}},
	}
	for _, tc := range cases {
		if got := fs.Position(id, tc.off); got != tc.want {
			t.Errorf("Position(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}

	if got := string(fs.Line(id, 2)); got != "let y = 2;" {
		t.Errorf("Line(2) = %q", got)
	}
}

func TestFileSetNormalizesCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.js", []byte("a\nb"), 0)
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("expected file")
	}
	if len(f.LineIdx) != 1 || f.LineIdx[0] != 1 {
		t.Fatalf("unexpected line index %v", f.LineIdx)
	}

	latest, ok := fs.GetLatest("./a.js")
	if !ok || latest != id {
		t.Fatalf("GetLatest = %v, %v", latest, ok)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %+v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Fatalf("Cover across files should be a no-op")
	}
}
