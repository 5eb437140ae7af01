package sema

// HoistMask is a set of declaration kinds that are visible before their
// textual position.
type HoistMask uint16

// Has reports whether kind is part of the mask.
func (m HoistMask) Has(kind DeclKind) bool {
	return m&kind.Mask() != 0
}

// Options configures the analyzer. The forward-reference rule is explicit
// rather than implied: a pending reference may bind to a declaration created
// after the use site only if the declaration's kind is in Hoisted.
type Options struct {
	// Hoisted declaration kinds resolve regardless of declaration order.
	// Block-scoped kinds (let/const) are excluded by default, which makes a
	// trivially-too-early reference an undefined-variable diagnostic instead
	// of a silent forward bind.
	Hoisted HoistMask

	// MaxDiagnostics bounds the table's diagnostic bag. Zero means the
	// default limit.
	MaxDiagnostics int
}

// DefaultMaxDiagnostics bounds diagnostic accumulation per compilation unit.
const DefaultMaxDiagnostics = 256

// DefaultHoisted is the conservative policy: function, var, import,
// parameter, and catch-parameter declarations hoist; let/const do not.
func DefaultHoisted() HoistMask {
	return DeclVar.Mask() | DeclFunction.Mask() | DeclImport.Mask() |
		DeclParameter.Mask() | DeclCatchParam.Mask()
}

// DefaultOptions returns the standard analyzer configuration.
func DefaultOptions() Options {
	return Options{
		Hoisted:        DefaultHoisted(),
		MaxDiagnostics: DefaultMaxDiagnostics,
	}
}

func (o Options) withDefaults() Options {
	if o.Hoisted == 0 {
		o.Hoisted = DefaultHoisted()
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return o
}
