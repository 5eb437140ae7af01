package project

import (
	"os"
	"path/filepath"
	"testing"

	"jsir/internal/sema"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	opts := cfg.AnalyzerOptions()
	if opts.Hoisted != sema.DefaultHoisted() {
		t.Fatalf("empty manifest should keep default hoisting, got %#x", opts.Hoisted)
	}
	if opts.MaxDiagnostics != sema.DefaultMaxDiagnostics {
		t.Fatalf("MaxDiagnostics = %d, want default %d", opts.MaxDiagnostics, sema.DefaultMaxDiagnostics)
	}
}

func TestLoadConfigHoistList(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[analyzer]
hoist = ["var", "function"]
max-diagnostics = 10
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	opts := cfg.AnalyzerOptions()
	if !opts.Hoisted.Has(sema.DeclVar) || !opts.Hoisted.Has(sema.DeclFunction) {
		t.Fatalf("var and function should hoist, mask %#x", opts.Hoisted)
	}
	if opts.Hoisted.Has(sema.DeclImport) {
		t.Fatalf("import should not hoist under explicit list, mask %#x", opts.Hoisted)
	}
	if opts.MaxDiagnostics != 10 {
		t.Fatalf("MaxDiagnostics = %d, want 10", opts.MaxDiagnostics)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[analyzer]
hoists = ["var"]
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadConfigRejectsBadHoistKind(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[analyzer]
hoist = ["let"]
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for non-hoistable kind")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("manifest dir = %s, want %s", filepath.Dir(path), root)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	if gotRoot != root {
		t.Fatalf("project root = %s, want %s", gotRoot, root)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Fatal("found a manifest in an empty directory")
	}
}
