package hir

// Unit is one compilation unit's control-flow graph: the entry block plus
// an ordered block map. After Finalize the order is reverse postorder and
// the graph is internally consistent; until then both are
// work-in-progress.
type Unit struct {
	Entry  BlockID
	Blocks *BlockMap
}

// Block returns the block for id, panicking on a dangling reference; a
// missing block inside a unit is a construction bug, not user error.
func (u *Unit) Block(id BlockID) *BasicBlock {
	b := u.Blocks.Get(id)
	if b == nil {
		panic("hir: dangling block reference")
	}
	return b
}
