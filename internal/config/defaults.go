package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Game: GameConfig{
			WinValue:          2048,
			Spawn4Probability: 0.1,
			StartTiles:        2,
		},
		Animation: AnimationConfig{
			SlideTicks: 8,
			PopTicks:   6,
		},
		Storage: StorageConfig{
			DBPath:  "~/.arcade/t2048.db",
			Profile: "default",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
