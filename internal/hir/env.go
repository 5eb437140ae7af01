package hir

// Environment mints block, identifier and type-variable ids for one
// compilation unit. Every builder working on the same unit shares one
// environment, so ids stay globally unique without coordination; separate
// units get separate environments. Not safe for concurrent use.
type Environment struct {
	blocks   uint32
	idents   uint32
	typeVars uint32
}

func NewEnvironment() *Environment {
	return &Environment{}
}

func (e *Environment) NextBlockID() BlockID {
	e.blocks++
	return BlockID(e.blocks)
}

func (e *Environment) NextIdentID() IdentID {
	e.idents++
	return IdentID(e.idents)
}

func (e *Environment) NextTypeVarID() TypeVarID {
	e.typeVars++
	return TypeVarID(e.typeVars)
}

// instrGen numbers instructions and terminals. Builders use one during
// construction; finalization restarts from a fresh generator, so the ids are
// ordinal positions within a unit, not environment-global.
type instrGen struct {
	next uint32
}

func (g *instrGen) Next() InstrID {
	g.next++
	return InstrID(g.next)
}
