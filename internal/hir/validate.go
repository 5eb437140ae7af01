package hir

import (
	"errors"
	"fmt"
)

// Validate checks the post-finalization invariants of a unit. Returns an
// error describing every violation found.
func Validate(u *Unit) error {
	if u == nil {
		return nil
	}
	var errs []error

	if u.Blocks.Len() == 0 {
		return errors.New("unit has no blocks")
	}
	order := u.Blocks.Order()
	if order[0] != u.Entry {
		errs = append(errs, fmt.Errorf("entry bb%d is not first in block order", u.Entry))
	}

	if err := validateTargets(u); err != nil {
		errs = append(errs, err)
	}
	if err := validateIDOrder(u); err != nil {
		errs = append(errs, err)
	}
	if err := validatePredecessors(u); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateTargets checks that every successor edge, fallthrough hint and
// For.Update reference resolves to a block in the map.
func validateTargets(u *Unit) error {
	var errs []error
	u.Blocks.Each(func(b *BasicBlock) {
		b.Terminal.EachSuccessor(func(succ BlockID) {
			if !u.Blocks.Contains(succ) {
				errs = append(errs, fmt.Errorf("bb%d: successor bb%d missing", b.ID, succ))
			}
		})
		if ft := b.Terminal.Fallthrough(); ft.IsValid() && !u.Blocks.Contains(ft) {
			errs = append(errs, fmt.Errorf("bb%d: fallthrough bb%d missing", b.ID, ft))
		}
	})
	return errors.Join(errs...)
}

// validateIDOrder checks instruction/terminal ids strictly increase across
// the whole ordered block sequence, terminal last in each block.
func validateIDOrder(u *Unit) error {
	var errs []error
	var prev InstrID
	u.Blocks.Each(func(b *BasicBlock) {
		for _, instr := range b.Instrs {
			if instr.ID <= prev {
				errs = append(errs, fmt.Errorf("bb%d: instruction id %d not increasing", b.ID, instr.ID))
			}
			prev = instr.ID
		}
		if b.Terminal.ID <= prev {
			errs = append(errs, fmt.Errorf("bb%d: terminal id %d not increasing", b.ID, b.Terminal.ID))
		}
		prev = b.Terminal.ID
	})
	return errors.Join(errs...)
}

// validatePredecessors checks each predecessor set equals the transpose of
// the reachable successor relation.
func validatePredecessors(u *Unit) error {
	want := make(map[BlockID]map[BlockID]bool, u.Blocks.Len())
	reachable := make(map[BlockID]bool, u.Blocks.Len())
	stack := []BlockID{u.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		u.Block(id).Terminal.EachSuccessor(func(succ BlockID) {
			if want[succ] == nil {
				want[succ] = make(map[BlockID]bool)
			}
			want[succ][id] = true
			stack = append(stack, succ)
		})
	}

	var errs []error
	u.Blocks.Each(func(b *BasicBlock) {
		expect := want[b.ID]
		if len(b.Preds) != len(expect) {
			errs = append(errs, fmt.Errorf("bb%d: %d predecessors, want %d", b.ID, len(b.Preds), len(expect)))
			return
		}
		for _, p := range b.Preds {
			if !expect[p] {
				errs = append(errs, fmt.Errorf("bb%d: unexpected predecessor bb%d", b.ID, p))
			}
		}
	})
	return errors.Join(errs...)
}
