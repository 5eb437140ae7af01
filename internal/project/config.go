package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"jsir/internal/sema"
)

// Config mirrors the jsir.toml manifest. All sections are optional; zero
// values fall back to the analyzer defaults.
type Config struct {
	Analyzer AnalyzerConfig `toml:"analyzer"`
	Output   OutputConfig   `toml:"output"`
}

// AnalyzerConfig configures scope analysis.
type AnalyzerConfig struct {
	// Hoist lists declaration kinds that resolve before their textual
	// position: "var", "function", "import", "parameter", "catch".
	Hoist []string `toml:"hoist"`

	MaxDiagnostics int `toml:"max-diagnostics"`
}

// OutputConfig configures diagnostic rendering defaults. CLI flags override
// these.
type OutputConfig struct {
	Format string `toml:"format"` // pretty | json | short
	Color  string `toml:"color"`  // auto | on | off
}

// LoadConfig parses a jsir.toml manifest.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, name := range c.Analyzer.Hoist {
		if _, ok := hoistKindByName(name); !ok {
			return fmt.Errorf("invalid hoist kind %q (expected: var|function|import|parameter|catch)", name)
		}
	}
	switch c.Output.Format {
	case "", "pretty", "json", "short":
	default:
		return fmt.Errorf("invalid output format %q (expected: pretty|json|short)", c.Output.Format)
	}
	switch c.Output.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color mode %q (expected: auto|on|off)", c.Output.Color)
	}
	return nil
}

// AnalyzerOptions translates the manifest into analyzer options. An empty
// hoist list keeps the default hoisting policy.
func (c Config) AnalyzerOptions() sema.Options {
	opts := sema.DefaultOptions()
	if c.Analyzer.MaxDiagnostics > 0 {
		opts.MaxDiagnostics = c.Analyzer.MaxDiagnostics
	}
	if len(c.Analyzer.Hoist) > 0 {
		var mask sema.HoistMask
		for _, name := range c.Analyzer.Hoist {
			if kind, ok := hoistKindByName(name); ok {
				mask |= kind.Mask()
			}
		}
		opts.Hoisted = mask
	}
	return opts
}

func hoistKindByName(name string) (sema.DeclKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "var":
		return sema.DeclVar, true
	case "function":
		return sema.DeclFunction, true
	case "import":
		return sema.DeclImport, true
	case "parameter":
		return sema.DeclParameter, true
	case "catch":
		return sema.DeclCatchParam, true
	default:
		return sema.DeclInvalid, false
	}
}
