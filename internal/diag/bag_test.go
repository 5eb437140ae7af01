package diag

import (
	"testing"

	"jsir/internal/source"
)

func TestBagPreservesEmissionOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SemaDuplicateDecl, source.Span{Start: 5, End: 6}, "dup"))
	bag.Add(NewError(SemaUndefinedVariable, source.Span{Start: 1, End: 2}, "undef"))

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Code != SemaDuplicateDecl || items[1].Code != SemaUndefinedVariable {
		t.Fatalf("emission order not preserved: %v, %v", items[0].Code, items[1].Code)
	}

	bag.Sort()
	items = bag.Items()
	if items[0].Code != SemaUndefinedVariable {
		t.Fatalf("sort by span failed, first = %v", items[0].Code)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(SemaInfo, source.Span{}, "first")) {
		t.Fatalf("first add should succeed")
	}
	if bag.Add(NewError(SemaInfo, source.Span{}, "second")) {
		t.Fatalf("second add should be rejected")
	}
	if bag.Len() != 1 {
		t.Fatalf("len = %d", bag.Len())
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 3, End: 4}
	bag.Add(NewError(SemaDuplicateDecl, sp, "dup"))
	bag.Add(NewError(SemaDuplicateDecl, sp, "dup"))
	bag.Add(NewError(SemaDuplicateDecl, source.Span{Start: 9, End: 10}, "dup"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("after dedup len = %d, want 2", bag.Len())
	}
}

func TestBagReporter(t *testing.T) {
	bag := NewBag(10)
	var r Reporter = BagReporter{Bag: bag}
	Error(r, SemaImportPlacement, source.Span{}, "import outside module")
	if !bag.HasErrors() {
		t.Fatalf("expected error in bag")
	}
	Error(nil, SemaImportPlacement, source.Span{}, "ignored")
}
