package hir

type (
	// BlockID identifies a basic block within one compilation unit.
	BlockID uint32
	// InstrID orders instructions and terminals; after finalization the
	// ids strictly increase across the whole block sequence.
	InstrID uint32
	// IdentID identifies a logical variable.
	IdentID uint32
	// TypeVarID is a placeholder type variable for later inference.
	TypeVarID uint32
	// ScopeVarID is reserved for reactive-scope assignment downstream.
	ScopeVarID uint32
)

const (
	NoBlockID    BlockID    = 0
	NoInstrID    InstrID    = 0
	NoIdentID    IdentID    = 0
	NoTypeVarID  TypeVarID  = 0
	NoScopeVarID ScopeVarID = 0
)

func (id BlockID) IsValid() bool    { return id != NoBlockID }
func (id InstrID) IsValid() bool    { return id != NoInstrID }
func (id IdentID) IsValid() bool    { return id != NoIdentID }
func (id TypeVarID) IsValid() bool  { return id != NoTypeVarID }
func (id ScopeVarID) IsValid() bool { return id != NoScopeVarID }
