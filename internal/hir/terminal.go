package hir

type TermKind uint8

const (
	TermInvalid TermKind = iota
	TermIf
	TermFor
	TermDoWhile
	TermGoto
	TermReturn
)

type IfTerm struct {
	Test        Place
	Consequent  BlockID
	Alternate   BlockID
	Fallthrough BlockID // optional
}

// ForTerm wires a for loop: Init runs once, Body repeats, Update (when
// present) runs between iterations. The loop test lives inside the body
// chain rather than as a separate edge.
type ForTerm struct {
	Init        BlockID
	Body        BlockID
	Update      BlockID // optional
	Fallthrough BlockID // optional
}

type DoWhileTerm struct {
	Body        BlockID
	Test        BlockID
	Fallthrough BlockID // optional
}

// GotoKind distinguishes loop-exiting jumps from back edges.
type GotoKind uint8

const (
	GotoBreak GotoKind = iota
	GotoContinue
)

type GotoTerm struct {
	Block BlockID
	Kind  GotoKind
}

type ReturnTerm struct {
	HasValue bool
	Value    Place
}

// Terminal ends a basic block and defines its successor edges. Only the
// payload matching Kind is meaningful.
type Terminal struct {
	ID   InstrID
	Kind TermKind

	If      IfTerm
	For     ForTerm
	DoWhile DoWhileTerm
	Goto    GotoTerm
	Return  ReturnTerm
}

// EachSuccessor calls f for every real control-flow successor. Fallthrough
// hints are construction metadata, not edges, and are skipped.
func (t *Terminal) EachSuccessor(f func(BlockID)) {
	switch t.Kind {
	case TermIf:
		f(t.If.Consequent)
		f(t.If.Alternate)
	case TermFor:
		f(t.For.Init)
		f(t.For.Body)
		if t.For.Update.IsValid() {
			f(t.For.Update)
		}
	case TermDoWhile:
		f(t.DoWhile.Body)
		f(t.DoWhile.Test)
	case TermGoto:
		f(t.Goto.Block)
	case TermReturn:
		// no successors
	}
}

// Fallthrough returns the optional fallthrough hint, or NoBlockID.
func (t *Terminal) Fallthrough() BlockID {
	switch t.Kind {
	case TermIf:
		return t.If.Fallthrough
	case TermFor:
		return t.For.Fallthrough
	case TermDoWhile:
		return t.DoWhile.Fallthrough
	default:
		return NoBlockID
	}
}

func (t *Terminal) clearFallthrough() {
	switch t.Kind {
	case TermIf:
		t.If.Fallthrough = NoBlockID
	case TermFor:
		t.For.Fallthrough = NoBlockID
	case TermDoWhile:
		t.DoWhile.Fallthrough = NoBlockID
	}
}
