// Package config provides YAML-based configuration loading and difficulty
// presets for the 2048 game.
package config

import (
	"errors"
	"fmt"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Game      GameConfig      `yaml:"game"`
	Animation AnimationConfig `yaml:"animation"`
	Storage   StorageConfig   `yaml:"storage"`
}

// GameConfig defines the rules of a session.
type GameConfig struct {
	WinValue          int     `yaml:"win_value"`
	Spawn4Probability float64 `yaml:"spawn4_probability"`
	StartTiles        int     `yaml:"start_tiles"`
}

// AnimationConfig defines how many ticks the slide and pop effects last.
// Zero disables the phase.
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// StorageConfig defines where scores and sessions are persisted.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	Profile string `yaml:"profile"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid value")

// Spawn4ForPreset returns the spawn4_probability for a difficulty preset.
func Spawn4ForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 0.05, true
	case DifficultyNormal:
		return 0.10, true
	case DifficultyHard:
		return 0.20, true
	default:
		return 0, false
	}
}

// ParsePreset converts a flag value into a preset. An empty string selects
// no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(s)
	if _, ok := Spawn4ForPreset(p); !ok {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// Validate reports the first out-of-range value.
func (c T2048Config) Validate() error {
	g := c.Game
	if g.WinValue < 4 || g.WinValue&(g.WinValue-1) != 0 {
		return fmt.Errorf("%w: game.win_value %d is not a power of two >= 4", ErrInvalidConfig, g.WinValue)
	}
	if g.Spawn4Probability < 0 || g.Spawn4Probability > 1 {
		return fmt.Errorf("%w: game.spawn4_probability %v outside [0, 1]", ErrInvalidConfig, g.Spawn4Probability)
	}
	if g.StartTiles < 1 || g.StartTiles > 16 {
		return fmt.Errorf("%w: game.start_tiles %d outside [1, 16]", ErrInvalidConfig, g.StartTiles)
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalidConfig)
	}
	return nil
}
