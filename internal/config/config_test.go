package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultT2048Config().Validate(); err != nil {
		t.Fatalf("DefaultT2048Config().Validate() = %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("embedded = %+v, want %+v", cfg, DefaultT2048Config())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*T2048Config)
		ok     bool
	}{
		{"defaults", func(*T2048Config) {}, true},
		{"win 16", func(c *T2048Config) { c.Game.WinValue = 16 }, true},
		{"win not power of two", func(c *T2048Config) { c.Game.WinValue = 1000 }, false},
		{"win too small", func(c *T2048Config) { c.Game.WinValue = 2 }, false},
		{"negative spawn4", func(c *T2048Config) { c.Game.Spawn4Probability = -0.1 }, false},
		{"spawn4 above one", func(c *T2048Config) { c.Game.Spawn4Probability = 1.5 }, false},
		{"no start tiles", func(c *T2048Config) { c.Game.StartTiles = 0 }, false},
		{"too many start tiles", func(c *T2048Config) { c.Game.StartTiles = 17 }, false},
		{"negative slide", func(c *T2048Config) { c.Animation.SlideTicks = -1 }, false},
		{"animation off", func(c *T2048Config) { c.Animation = AnimationConfig{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"easy", 0.05},
		{"normal", 0.10},
		{"hard", 0.20},
	}
	for _, tt := range tests {
		p, err := ParsePreset(tt.in)
		if err != nil {
			t.Fatalf("ParsePreset(%q) = %v", tt.in, err)
		}
		cfg := DefaultT2048Config()
		ApplyPreset(&cfg, p)
		if cfg.Game.Spawn4Probability != tt.want {
			t.Errorf("%s spawn4 = %v, want %v", tt.in, cfg.Game.Spawn4Probability, tt.want)
		}
	}

	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("fixed"); err == nil {
		t.Error("ParsePreset(fixed) should fail")
	}

	cfg := DefaultT2048Config()
	ApplyPreset(&cfg, "")
	if cfg != DefaultT2048Config() {
		t.Error("empty preset changed the config")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "game:\n  win_value: 512\nstorage:\n  profile: alice\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048() failed: %v", err)
	}
	if cfg.Game.WinValue != 512 || cfg.Storage.Profile != "alice" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.Game.StartTiles != 2 || cfg.Animation.SlideTicks != 8 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadT2048(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("game:\n  win_value: 100\n"), 0o644)
	if _, err := LoadT2048(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadT2048(bad) = %v, want ErrInvalidConfig", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("game: [\n"), 0o644)
	if _, err := LoadT2048(broken); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadT2048("")
	if err != nil {
		t.Fatalf("LoadT2048() failed: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("no files: cfg = %+v, want defaults", cfg)
	}

	os.MkdirAll(filepath.Join(work, "configs"), 0o755)
	os.WriteFile(filepath.Join(work, "configs", "t2048.yaml"), []byte("game:\n  start_tiles: 4\n"), 0o644)
	cfg, _ = LoadT2048("")
	if cfg.Game.StartTiles != 4 {
		t.Errorf("local config: start_tiles = %d, want 4", cfg.Game.StartTiles)
	}

	userDir := filepath.Join(home, ".arcade", "configs")
	os.MkdirAll(userDir, 0o755)
	os.WriteFile(filepath.Join(userDir, "t2048.yaml"), []byte("game:\n  start_tiles: 3\n"), 0o644)
	cfg, _ = LoadT2048("")
	if cfg.Game.StartTiles != 3 {
		t.Errorf("user config: start_tiles = %d, want 3", cfg.Game.StartTiles)
	}

	// An invalid user file falls through to the next location.
	os.WriteFile(filepath.Join(userDir, "t2048.yaml"), []byte("game:\n  start_tiles: 99\n"), 0o644)
	cfg, _ = LoadT2048("")
	if cfg.Game.StartTiles != 4 {
		t.Errorf("invalid user config: start_tiles = %d, want 4 from ./configs", cfg.Game.StartTiles)
	}
}
