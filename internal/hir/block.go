package hir

// BlockKind records why a block was opened; later passes treat loop and
// value blocks differently from plain statement sequences.
type BlockKind uint8

const (
	BlockDefault BlockKind = iota
	BlockLoop
	BlockValue
)

func (k BlockKind) String() string {
	switch k {
	case BlockLoop:
		return "loop"
	case BlockValue:
		return "value"
	default:
		return "block"
	}
}

// BasicBlock is a straight-line instruction sequence ending in exactly one
// terminal. Predecessors stay empty until finalization computes them.
type BasicBlock struct {
	ID       BlockID
	Kind     BlockKind
	Instrs   []Instruction
	Terminal Terminal
	Preds    []BlockID
}

func (b *BasicBlock) addPred(id BlockID) {
	for _, p := range b.Preds {
		if p == id {
			return
		}
	}
	b.Preds = append(b.Preds, id)
}

// HasPred reports whether id is recorded as a predecessor.
func (b *BasicBlock) HasPred(id BlockID) bool {
	for _, p := range b.Preds {
		if p == id {
			return true
		}
	}
	return false
}
