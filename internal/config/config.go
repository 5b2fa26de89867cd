// Package config provides YAML-based configuration loading for Reversi:
// board size, player color, CPU strength and display glyphs.
package config

// ReversiConfig contains all configuration for a Reversi match.
type ReversiConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Player  PlayerConfig  `yaml:"player"`
	Display DisplayConfig `yaml:"display"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig defines the human side and the CPU opponent.
type PlayerConfig struct {
	Color        string           `yaml:"color"`          // "dark" moves first
	Difficulty   DifficultyPreset `yaml:"difficulty"`     // easy, normal, hard
	AgentDelayMS int              `yaml:"agent_delay_ms"` // minimum CPU think time
}

// DisplayConfig defines what the board shows and how.
type DisplayConfig struct {
	ShowHints     bool        `yaml:"show_hints"`
	ShowNeighbors bool        `yaml:"show_neighbors"`
	Glyphs        GlyphConfig `yaml:"glyphs"`
}

// GlyphConfig holds one-character strings for each cell kind.
type GlyphConfig struct {
	Empty string `yaml:"empty"`
	Dark  string `yaml:"dark"`
	Light string `yaml:"light"`
	Hint  string `yaml:"hint"`
}

// Overrides carries command line values that win over the loaded file.
// Zero values leave the loaded setting alone.
type Overrides struct {
	Width      int
	Height     int
	Color      string
	Difficulty string
}

// Apply copies every non-zero override into cfg.
func (o Overrides) Apply(cfg *ReversiConfig) {
	if o.Width > 0 {
		cfg.Board.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Board.Height = o.Height
	}
	if o.Color != "" {
		cfg.Player.Color = o.Color
	}
	if o.Difficulty != "" {
		cfg.Player.Difficulty = DifficultyPreset(o.Difficulty)
	}
}
