package hir

// BlockMap is an insertion-ordered map of basic blocks. Order is
// semantically meaningful: after finalization it is the reverse postorder
// of the graph, and instruction renumbering depends on it.
type BlockMap struct {
	order  []BlockID
	blocks map[BlockID]*BasicBlock
}

func NewBlockMap(capacity int) *BlockMap {
	return &BlockMap{
		order:  make([]BlockID, 0, capacity),
		blocks: make(map[BlockID]*BasicBlock, capacity),
	}
}

func (m *BlockMap) Len() int { return len(m.order) }

// Insert appends the block; inserting an id twice keeps the first position
// and replaces the value.
func (m *BlockMap) Insert(b *BasicBlock) {
	if _, ok := m.blocks[b.ID]; !ok {
		m.order = append(m.order, b.ID)
	}
	m.blocks[b.ID] = b
}

func (m *BlockMap) Get(id BlockID) *BasicBlock {
	return m.blocks[id]
}

func (m *BlockMap) Contains(id BlockID) bool {
	_, ok := m.blocks[id]
	return ok
}

// Order returns the block ids in map order. The slice is shared; callers
// must not mutate it.
func (m *BlockMap) Order() []BlockID { return m.order }

// Each visits blocks in map order.
func (m *BlockMap) Each(f func(*BasicBlock)) {
	for _, id := range m.order {
		f(m.blocks[id])
	}
}

// Remove detaches and returns the block, or nil if absent.
func (m *BlockMap) Remove(id BlockID) *BasicBlock {
	b, ok := m.blocks[id]
	if !ok {
		return nil
	}
	delete(m.blocks, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return b
}
