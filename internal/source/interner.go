package source

// StringID is an interned string handle. NoStringID maps to the empty string.
type StringID uint32

const NoStringID StringID = 0

// IsValid reports whether the ID refers to a non-empty interned string.
func (id StringID) IsValid() bool { return id != NoStringID }

// Interner deduplicates identifier and label names so that the analyzer
// compares names as integers.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""}, // NoStringID
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, allocating one if s was not seen before.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	// Copy so the interner does not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the string for id, or ("", false) for an unknown ID.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup returns the string for id and panics on an unknown ID.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid string ID")
	}
	return s
}

// Len counts interned strings, including the NoStringID sentinel.
func (in *Interner) Len() int {
	return len(in.byID)
}
