package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandvox.yaml")
	data := "window_width: 800\nworld_seed: 42\ndouble_sided_water_top: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WindowWidth != 800 {
		t.Errorf("window_width = %d, want 800", cfg.WindowWidth)
	}
	if cfg.WorldSeed != 42 {
		t.Errorf("world_seed = %d, want 42", cfg.WorldSeed)
	}
	if !cfg.DoubleSidedWaterTop {
		t.Error("double_sided_water_top not applied")
	}
	// Untouched keys keep their defaults.
	if cfg.WorldChunks != Default().WorldChunks {
		t.Errorf("world_chunks = %d, want default", cfg.WorldChunks)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandvox.yaml")
	if err := os.WriteFile(path, []byte("window_width: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml did not error")
	}
}
