package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	isolateXDG(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultReversiConfig() {
		t.Errorf("Load() = %+v, expected %+v", cfg, DefaultReversiConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "board:\n  width: 6\n  height: 4\nplayer:\n  color: light\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 4 {
		t.Errorf("board = %dx%d, expected 6x4", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Player.Color != "light" {
		t.Errorf("Player.Color = %q, expected light", cfg.Player.Color)
	}
	// Fields missing from the file keep their defaults
	if cfg.Player.AgentDelayMS != 600 {
		t.Errorf("AgentDelayMS = %d, expected default 600", cfg.Player.AgentDelayMS)
	}
	if cfg.Display.Glyphs.Dark != "●" {
		t.Errorf("Glyphs.Dark = %q, expected default", cfg.Display.Glyphs.Dark)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [not, a, map")
	if _, err := Load(bad); err == nil {
		t.Error("Load(malformed) should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "board:\n  width: 0\n")
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(width 0) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadUserConfig(t *testing.T) {
	dir := isolateXDG(t)
	writeFile(t, filepath.Join(dir, "reversi", "reversi.yaml"), "board:\n  width: 10\n  height: 10\n")

	if UserConfigPath() == "" {
		t.Fatal("UserConfigPath() is empty with a user file present")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Width != 10 {
		t.Errorf("Board.Width = %d, expected 10 from user config", cfg.Board.Width)
	}
}

func TestWriteDefault(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "nested", "reversi.yaml")

	got, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if got != path {
		t.Errorf("WriteDefault() path = %q, expected %q", got, path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultReversiConfig() {
		t.Errorf("written config = %+v, expected defaults", cfg)
	}

	if _, err := WriteDefault(path, false); err == nil {
		t.Error("WriteDefault() should refuse to overwrite without force")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Errorf("WriteDefault(force) error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ReversiConfig)
		wantErr bool
	}{
		{"defaults", func(*ReversiConfig) {}, false},
		{"smallest board", func(c *ReversiConfig) { c.Board.Width, c.Board.Height = 1, 1 }, false},
		{"zero width", func(c *ReversiConfig) { c.Board.Width = 0 }, true},
		{"negative height", func(c *ReversiConfig) { c.Board.Height = -2 }, true},
		{"too wide", func(c *ReversiConfig) { c.Board.Width = MaxBoardSide + 1 }, true},
		{"light player", func(c *ReversiConfig) { c.Player.Color = "light" }, false},
		{"unknown color", func(c *ReversiConfig) { c.Player.Color = "blue" }, true},
		{"empty difficulty", func(c *ReversiConfig) { c.Player.Difficulty = "" }, false},
		{"unknown difficulty", func(c *ReversiConfig) { c.Player.Difficulty = "insane" }, true},
		{"negative delay", func(c *ReversiConfig) { c.Player.AgentDelayMS = -1 }, true},
		{"two rune glyph", func(c *ReversiConfig) { c.Display.Glyphs.Dark = "XX" }, true},
		{"empty glyph", func(c *ReversiConfig) { c.Display.Glyphs.Hint = "" }, true},
		{"control glyph", func(c *ReversiConfig) { c.Display.Glyphs.Empty = "\t" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultReversiConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestOverridesApply(t *testing.T) {
	cfg := DefaultReversiConfig()
	Overrides{Width: 4, Color: "light", Difficulty: "hard"}.Apply(&cfg)

	if cfg.Board.Width != 4 {
		t.Errorf("Width = %d, expected 4", cfg.Board.Width)
	}
	if cfg.Board.Height != 8 {
		t.Errorf("Height = %d, expected untouched 8", cfg.Board.Height)
	}
	if cfg.Player.Color != "light" {
		t.Errorf("Color = %q, expected light", cfg.Player.Color)
	}
	if cfg.Player.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %q, expected hard", cfg.Player.Difficulty)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"Hard", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyNext(t *testing.T) {
	if got := DifficultyEasy.Next(); got != DifficultyNormal {
		t.Errorf("easy.Next() = %q, expected normal", got)
	}
	if got := DifficultyHard.Next(); got != DifficultyEasy {
		t.Errorf("hard.Next() = %q, expected easy", got)
	}
}

func TestGlyph(t *testing.T) {
	if got := Glyph("●x", '?'); got != '●' {
		t.Errorf("Glyph(●x) = %q, expected ●", got)
	}
	if got := Glyph("", '?'); got != '?' {
		t.Errorf("Glyph(empty) = %q, expected fallback", got)
	}
}
