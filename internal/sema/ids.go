package sema

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// DeclID identifies a declaration. IDs are minted monotonically, so the
// ordering of two DeclIDs is the ordering of their textual creation points.
type DeclID uint32

const (
	NoDeclID DeclID = 0
)

func (id DeclID) IsValid() bool { return id != NoDeclID }

// RefID identifies a resolved reference.
type RefID uint32

const (
	NoRefID RefID = 0
)

func (id RefID) IsValid() bool { return id != NoRefID }

// LabelID identifies a break/continue target label.
type LabelID uint32

const (
	NoLabelID LabelID = 0
)

func (id LabelID) IsValid() bool { return id != NoLabelID }
