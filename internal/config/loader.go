package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	appDir   = "reversi"
	fileName = "reversi.yaml"

	// MaxBoardSide bounds either board dimension.
	MaxBoardSide = 26
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Load loads Reversi configuration and validates it.
// Search order: customPath -> $XDG_CONFIG_HOME/reversi/reversi.yaml ->
// ./configs/reversi.yaml -> embedded default -> hardcoded default.
// Files are decoded over the defaults, so partial files are fine.
func Load(customPath string) (ReversiConfig, error) {
	cfg := DefaultReversiConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if path := UserConfigPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultReversiConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultReversiConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultReversiYAML, &cfg); err != nil {
		return DefaultReversiConfig(), nil
	}
	return cfg, cfg.Validate()
}

// UserConfigPath returns the existing user config file, or empty if none.
func UserConfigPath() string {
	path, err := xdg.SearchConfigFile(filepath.Join(appDir, fileName))
	if err != nil {
		return ""
	}
	return path
}

// WriteDefault writes the embedded default file to path, creating parent
// directories. An empty path selects the XDG user config location.
// Existing files are left alone unless force is set.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		p, err := xdg.ConfigFile(filepath.Join(appDir, fileName))
		if err != nil {
			return "", fmt.Errorf("config: cannot resolve user config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("config: cannot create directory: %w", err)
	}
	if err := os.WriteFile(path, defaultReversiYAML, 0o644); err != nil {
		return path, fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}

// Validate rejects sizes, colors, presets or glyphs the game cannot use.
func (c ReversiConfig) Validate() error {
	if c.Board.Width < 1 || c.Board.Height < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Board.Width > MaxBoardSide || c.Board.Height > MaxBoardSide {
		return fmt.Errorf("%w: board sides are limited to %d, got %dx%d", ErrInvalidConfig, MaxBoardSide, c.Board.Width, c.Board.Height)
	}
	switch c.Player.Color {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: player color %q (expected dark or light)", ErrInvalidConfig, c.Player.Color)
	}
	if _, err := ParseDifficulty(string(c.Player.Difficulty)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Player.AgentDelayMS < 0 {
		return fmt.Errorf("%w: agent_delay_ms must not be negative", ErrInvalidConfig)
	}

	glyphs := []struct {
		name, value string
	}{
		{"empty", c.Display.Glyphs.Empty},
		{"dark", c.Display.Glyphs.Dark},
		{"light", c.Display.Glyphs.Light},
		{"hint", c.Display.Glyphs.Hint},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("%w: glyph %s must be a single character, got %q", ErrInvalidConfig, g.name, g.value)
		}
		r, _ := utf8.DecodeRuneInString(g.value)
		if r < 32 || (r >= 127 && r <= 159) {
			return fmt.Errorf("%w: glyph %s is a control character", ErrInvalidConfig, g.name)
		}
	}
	return nil
}

// Glyph returns the first rune of s, or fallback when s is empty.
func Glyph(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
