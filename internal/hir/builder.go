package hir

import (
	"jsir/internal/binder"
	"jsir/internal/source"
)

// wipBlock is the single open block a builder holds while lowering drives
// it; it becomes a BasicBlock when terminated.
type wipBlock struct {
	id     BlockID
	kind   BlockKind
	instrs []Instruction
}

type bindingKey struct {
	name source.StringID
	id   binder.BindingID
}

// Builder constructs a Unit incrementally. Exactly one block is open at a
// time: Push appends to it, Terminate freezes it and opens the next one.
// Call Build once lowering is complete.
type Builder struct {
	env       *Environment
	completed *BlockMap
	entry     BlockID
	wip       wipBlock
	ids       instrGen
	bindings  map[bindingKey]Identifier
}

func NewBuilder(env *Environment) *Builder {
	entry := env.NextBlockID()
	return &Builder{
		env:       env,
		completed: NewBlockMap(8),
		entry:     entry,
		wip:       wipBlock{id: entry, kind: BlockDefault},
		bindings:  make(map[bindingKey]Identifier),
	}
}

// Current returns the id of the open block.
func (b *Builder) Current() BlockID { return b.wip.id }

// Reserve mints a block id without opening it; loop lowering reserves its
// test/body/fallthrough blocks up front so terminals can reference them
// before they are built.
func (b *Builder) Reserve() BlockID { return b.env.NextBlockID() }

// Push appends an instruction computing value into lvalue, with a fresh id.
func (b *Builder) Push(lvalue Place, value Value, span source.Span) InstrID {
	id := b.ids.Next()
	b.wip.instrs = append(b.wip.instrs, Instruction{
		ID:     id,
		Lvalue: lvalue,
		Value:  value,
		Span:   span,
	})
	return id
}

// Terminate freezes the open block with the given terminal and opens a new
// block of the requested kind.
func (b *Builder) Terminate(terminal Terminal, nextKind BlockKind) BlockID {
	next := b.env.NextBlockID()
	b.TerminateAs(next, terminal, nextKind)
	return next
}

// TerminateAs is Terminate with a caller-chosen (reserved) id for the next
// open block.
func (b *Builder) TerminateAs(next BlockID, terminal Terminal, nextKind BlockKind) {
	terminal.ID = b.ids.Next()
	done := b.wip
	b.wip = wipBlock{id: next, kind: nextKind}
	b.completed.Insert(&BasicBlock{
		ID:       done.id,
		Kind:     done.kind,
		Instrs:   done.instrs,
		Terminal: terminal,
	})
}

// MakeTemporary mints an unnamed identifier with fresh metadata.
func (b *Builder) MakeTemporary() Identifier {
	return Identifier{
		ID: b.env.NextIdentID(),
		Data: &IdentData{
			Type: b.env.NextTypeVarID(),
		},
	}
}

// ResolveBinding returns the identifier cell for a named binding, creating
// it on first use. Every use of the same binding observes the same cell;
// globals get no cell at all.
func (b *Builder) ResolveBinding(bind binder.Binding) (Identifier, bool) {
	if bind.Kind == binder.BindingGlobal {
		return Identifier{}, false
	}
	key := bindingKey{name: bind.Name, id: bind.ID}
	if ident, ok := b.bindings[key]; ok {
		return ident, true
	}
	ident := Identifier{
		ID:   b.env.NextIdentID(),
		Name: bind.Name,
		Data: &IdentData{
			Type: b.env.NextTypeVarID(),
		},
	}
	b.bindings[key] = ident
	return ident, true
}

// Build terminates nothing further: the caller must have ended the last
// open block (every well-formed unit ends in a Return). It then runs the
// finalization pipeline and returns the finished unit.
func (b *Builder) Build() *Unit {
	unit := &Unit{Entry: b.entry, Blocks: b.completed}
	Finalize(unit)
	return unit
}
