package hir

import (
	"testing"

	"jsir/internal/binder"
	"jsir/internal/source"
)

func returnTerm() Terminal {
	return Terminal{Kind: TermReturn}
}

func gotoTerm(target BlockID, kind GotoKind) Terminal {
	return Terminal{Kind: TermGoto, Goto: GotoTerm{Block: target, Kind: kind}}
}

func TestFinalizeSingleBlock(t *testing.T) {
	b := NewBuilder(NewEnvironment())
	b.Push(Place{Ident: b.MakeTemporary()}, Value{Kind: ValPrimitive}, source.Span{})
	b.Terminate(returnTerm(), BlockDefault)
	unit := b.Build()

	if unit.Blocks.Len() != 1 {
		t.Fatalf("block count = %d, want 1", unit.Blocks.Len())
	}
	if err := Validate(unit); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	entry := unit.Block(unit.Entry)
	if len(entry.Instrs) != 1 || entry.Instrs[0].ID != 1 || entry.Terminal.ID != 2 {
		t.Fatalf("renumbering off: instr=%d terminal=%d", entry.Instrs[0].ID, entry.Terminal.ID)
	}
}

// A diamond comes out in reverse postorder with the entry first, the
// alternate branch descended before the consequent, and the join's
// predecessor set holding both arms.
func TestFinalizeDiamond(t *testing.T) {
	b := NewBuilder(NewEnvironment())
	entry := b.Current()
	cons := b.Reserve()
	alt := b.Reserve()
	join := b.Reserve()

	b.TerminateAs(cons, Terminal{Kind: TermIf, If: IfTerm{
		Test:        Place{Ident: b.MakeTemporary()},
		Consequent:  cons,
		Alternate:   alt,
		Fallthrough: join,
	}}, BlockDefault)
	b.TerminateAs(alt, gotoTerm(join, GotoBreak), BlockDefault)
	b.TerminateAs(join, gotoTerm(join, GotoBreak), BlockDefault)
	b.Terminate(returnTerm(), BlockDefault)
	unit := b.Build()

	if err := Validate(unit); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	order := unit.Blocks.Order()
	want := []BlockID{entry, cons, alt, join}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("order[%d] = bb%d, want bb%d (full order %v)", i, order[i], id, order)
		}
	}
	jb := unit.Block(join)
	if len(jb.Preds) != 2 || !jb.HasPred(cons) || !jb.HasPred(alt) {
		t.Fatalf("join predecessors = %v", jb.Preds)
	}
	if len(unit.Block(entry).Preds) != 0 {
		t.Fatalf("entry predecessors = %v", unit.Block(entry).Preds)
	}
}

// A for whose body unconditionally returns leaves the update and
// fallthrough blocks unreachable; finalization drops them and clears the
// dangling edges.
func TestFinalizeClearsUnreachableForUpdate(t *testing.T) {
	b := NewBuilder(NewEnvironment())
	entry := b.Current()
	init := b.Reserve()
	body := b.Reserve()
	update := b.Reserve()
	fall := b.Reserve()

	b.TerminateAs(init, Terminal{Kind: TermFor, For: ForTerm{
		Init:        init,
		Body:        body,
		Update:      update,
		Fallthrough: fall,
	}}, BlockDefault)
	b.TerminateAs(body, gotoTerm(body, GotoContinue), BlockLoop)
	b.TerminateAs(update, returnTerm(), BlockDefault)
	b.TerminateAs(fall, gotoTerm(body, GotoContinue), BlockDefault)
	b.Terminate(returnTerm(), BlockDefault)
	unit := b.Build()

	if err := Validate(unit); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if unit.Blocks.Contains(update) || unit.Blocks.Contains(fall) {
		t.Fatalf("unreachable blocks survived: %v", unit.Blocks.Order())
	}
	term := &unit.Block(entry).Terminal
	if term.Kind != TermFor {
		t.Fatalf("terminal kind = %v", term.Kind)
	}
	if term.For.Update.IsValid() {
		t.Fatalf("update edge not cleared: bb%d", term.For.Update)
	}
	if term.For.Fallthrough.IsValid() {
		t.Fatalf("fallthrough not cleared: bb%d", term.For.Fallthrough)
	}
}

// do { return; } while (cond): the test block is unreachable, so the
// do-while terminal degrades to a break-kind goto targeting the body.
func TestFinalizeDegradesDoWhile(t *testing.T) {
	b := NewBuilder(NewEnvironment())
	entry := b.Current()
	body := b.Reserve()
	test := b.Reserve()
	fall := b.Reserve()

	b.TerminateAs(body, Terminal{Kind: TermDoWhile, DoWhile: DoWhileTerm{
		Body:        body,
		Test:        test,
		Fallthrough: fall,
	}}, BlockLoop)
	b.TerminateAs(test, returnTerm(), BlockDefault)
	b.TerminateAs(fall, gotoTerm(body, GotoContinue), BlockDefault)
	b.Terminate(returnTerm(), BlockDefault)
	unit := b.Build()

	if err := Validate(unit); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	term := &unit.Block(entry).Terminal
	if term.Kind != TermGoto {
		t.Fatalf("terminal kind = %v, want goto", term.Kind)
	}
	if term.Goto.Block != body || term.Goto.Kind != GotoBreak {
		t.Fatalf("degraded goto = %+v", term.Goto)
	}
}

func TestFinalizeRenumbersAcrossBlocks(t *testing.T) {
	b := NewBuilder(NewEnvironment())
	b.Push(Place{Ident: b.MakeTemporary()}, Value{Kind: ValPrimitive}, source.Span{})
	next := b.Terminate(gotoTerm(2, GotoBreak), BlockDefault)
	if next != BlockID(2) {
		t.Fatalf("next block id = %d", next)
	}
	b.Push(Place{Ident: b.MakeTemporary()}, Value{Kind: ValPrimitive}, source.Span{})
	b.Push(Place{Ident: b.MakeTemporary()}, Value{Kind: ValPrimitive}, source.Span{})
	b.Terminate(returnTerm(), BlockDefault)
	unit := b.Build()

	if err := Validate(unit); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	var prev InstrID
	unit.Blocks.Each(func(blk *BasicBlock) {
		for _, instr := range blk.Instrs {
			if instr.ID != prev+1 {
				t.Fatalf("instruction ids not dense: %d after %d", instr.ID, prev)
			}
			prev = instr.ID
		}
		if blk.Terminal.ID != prev+1 {
			t.Fatalf("terminal id %d after %d", blk.Terminal.ID, prev)
		}
		prev = blk.Terminal.ID
	})
}

func TestFinalizeEmptyUnitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty block map")
		}
	}()
	Finalize(&Unit{Entry: 1, Blocks: NewBlockMap(0)})
}

func TestResolveBindingMemoizes(t *testing.T) {
	b := NewBuilder(NewEnvironment())
	strs := source.NewInterner()
	name := strs.Intern("x")

	local := binder.Binding{Kind: binder.BindingLocal, ID: 7, Name: name}
	first, ok := b.ResolveBinding(local)
	if !ok {
		t.Fatalf("local binding did not resolve")
	}
	second, _ := b.ResolveBinding(local)
	if first.ID != second.ID || first.Data != second.Data {
		t.Fatalf("same binding produced distinct identifiers: %d vs %d", first.ID, second.ID)
	}

	other, _ := b.ResolveBinding(binder.Binding{Kind: binder.BindingModule, ID: 8, Name: name})
	if other.ID == first.ID {
		t.Fatalf("distinct bindings share identifier %d", first.ID)
	}

	if _, ok := b.ResolveBinding(binder.Binding{Kind: binder.BindingGlobal, Name: name}); ok {
		t.Fatalf("global binding must not produce an identifier cell")
	}
}
