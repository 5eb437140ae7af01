package hir

import "fmt"

// Finalize runs the fixed pipeline that turns a freshly built graph into a
// consistent unit: reverse-postorder reordering, pruning of references to
// blocks the reordering dropped, do-while degradation, instruction
// renumbering, and predecessor computation. An empty block map at any
// stage is an internal invariant violation.
func Finalize(u *Unit) {
	assertNonEmpty(u, "initial block count")
	reversePostorder(u)
	assertNonEmpty(u, "after reverse postorder")
	pruneForUpdates(u)
	assertNonEmpty(u, "after pruning for updates")
	pruneFallthroughs(u)
	assertNonEmpty(u, "after pruning fallthroughs")
	degradeDoWhile(u)
	assertNonEmpty(u, "after do-while degradation")
	renumberInstructions(u)
	assertNonEmpty(u, "after renumbering")
	markPredecessors(u)
	assertNonEmpty(u, "after predecessor marking")
}

func assertNonEmpty(u *Unit, stage string) {
	if u.Blocks.Len() == 0 {
		panic(fmt.Sprintf("hir: empty block map %s", stage))
	}
}

// reversePostorder rebuilds the block map in reverse postorder of a
// depth-first walk from the entry. The walk follows a restricted child set
// per terminal kind; for If the alternate is descended before the
// consequent, which fixes the output order and must not change. Blocks the
// walk never reaches are dropped from the map.
func reversePostorder(u *Unit) {
	visited := make(map[BlockID]bool, u.Blocks.Len())
	postorder := make([]BlockID, 0, u.Blocks.Len())

	type frame struct {
		id       BlockID
		expanded bool
	}
	stack := []frame{{id: u.Entry}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			postorder = append(postorder, top.id)
			stack = stack[:len(stack)-1]
			continue
		}
		if visited[top.id] {
			stack = stack[:len(stack)-1]
			continue
		}
		visited[top.id] = true
		top.expanded = true
		id := top.id

		// children pushed in reverse so the first child is expanded first
		term := &u.Block(id).Terminal
		switch term.Kind {
		case TermIf:
			stack = append(stack, frame{id: term.If.Consequent})
			stack = append(stack, frame{id: term.If.Alternate})
		case TermFor:
			stack = append(stack, frame{id: term.For.Init})
		case TermDoWhile:
			stack = append(stack, frame{id: term.DoWhile.Body})
		case TermGoto:
			stack = append(stack, frame{id: term.Goto.Block})
		case TermReturn:
			// no children
		}
	}

	next := NewBlockMap(len(postorder))
	for i := len(postorder) - 1; i >= 0; i-- {
		next.Insert(u.Blocks.Remove(postorder[i]))
	}
	u.Blocks = next
}

// pruneForUpdates clears For.Update edges whose target did not survive
// reordering.
func pruneForUpdates(u *Unit) {
	u.Blocks.Each(func(b *BasicBlock) {
		term := &b.Terminal
		if term.Kind == TermFor && term.For.Update.IsValid() && !u.Blocks.Contains(term.For.Update) {
			term.For.Update = NoBlockID
		}
	})
}

// pruneFallthroughs clears fallthrough hints pointing at dropped blocks.
func pruneFallthroughs(u *Unit) {
	u.Blocks.Each(func(b *BasicBlock) {
		term := &b.Terminal
		if ft := term.Fallthrough(); ft.IsValid() && !u.Blocks.Contains(ft) {
			term.clearFallthrough()
		}
	})
}

// degradeDoWhile rewrites do-while terminals whose test block was dropped:
// the loop can never re-test, so control must exit through the body, and
// the terminal becomes a break-kind goto to it.
func degradeDoWhile(u *Unit) {
	u.Blocks.Each(func(b *BasicBlock) {
		term := &b.Terminal
		if term.Kind == TermDoWhile && !u.Blocks.Contains(term.DoWhile.Test) {
			body := term.DoWhile.Body
			b.Terminal = Terminal{
				ID:   term.ID,
				Kind: TermGoto,
				Goto: GotoTerm{Block: body, Kind: GotoBreak},
			}
		}
	})
}

// renumberInstructions assigns fresh strictly increasing ids in block
// order: instructions first, then the block's terminal. Relies on the
// blocks already being in reverse postorder. Visiting a slot twice is an
// internal invariant violation.
func renumberInstructions(u *Unit) {
	var gen instrGen
	type slot struct{ block, instr int }
	seen := make(map[slot]bool)
	blockIx := 0
	u.Blocks.Each(func(b *BasicBlock) {
		for i := range b.Instrs {
			s := slot{block: blockIx, instr: i}
			if seen[s] {
				panic(fmt.Sprintf("hir: block %d instruction %d already renumbered", blockIx, i))
			}
			seen[s] = true
			b.Instrs[i].ID = gen.Next()
		}
		b.Terminal.ID = gen.Next()
		blockIx++
	})
}

// markPredecessors recomputes every predecessor set as the transpose of
// the successor relation, depth-first from the entry. The incoming edge is
// recorded before the visited check so join points see every edge even
// though each block's successors are expanded only once.
func markPredecessors(u *Unit) {
	u.Blocks.Each(func(b *BasicBlock) {
		b.Preds = b.Preds[:0]
	})

	type edge struct {
		id   BlockID
		from BlockID
	}
	visited := make(map[BlockID]bool, u.Blocks.Len())
	stack := []edge{{id: u.Entry, from: NoBlockID}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		block := u.Block(e.id)
		if e.from.IsValid() {
			block.addPred(e.from)
		}
		if visited[e.id] {
			continue
		}
		visited[e.id] = true
		block.Terminal.EachSuccessor(func(succ BlockID) {
			stack = append(stack, edge{id: succ, from: e.id})
		})
	}
}
