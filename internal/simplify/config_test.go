package simplify

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kunlun.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.FloorDiv || !cfg.Mod {
		t.Errorf("both patterns should default to enabled: %+v", cfg)
	}
	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d", cfg.MaxIterations)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[simplify]
floor-div = false
max-iterations = 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FloorDiv {
		t.Error("floor-div should be disabled")
	}
	// 未出现的字段保持默认值
	if !cfg.Mod {
		t.Error("mod should keep its default")
	}
	if cfg.MaxIterations != 3 {
		t.Errorf("MaxIterations = %d, want 3", cfg.MaxIterations)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "[simplify\nfloor-div =")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
