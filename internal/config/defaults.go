package config

import (
	_ "embed"
)

//go:embed defaults/reversi.yaml
var defaultReversiYAML []byte

// DefaultReversiConfig returns the built-in configuration.
func DefaultReversiConfig() ReversiConfig {
	return ReversiConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Player: PlayerConfig{
			Color:        "dark",
			Difficulty:   DifficultyNormal,
			AgentDelayMS: 600,
		},
		Display: DisplayConfig{
			ShowHints:     true,
			ShowNeighbors: false,
			Glyphs: GlyphConfig{
				Empty: "·",
				Dark:  "●",
				Light: "○",
				Hint:  "•",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultReversiYAML))
	copy(out, defaultReversiYAML)
	return out
}
