package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/platform/tui"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Start a match in the given mode (default: reversi, against the CPU).

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Place a disk
  ?                 - Toggle legal move hints
  N                 - Toggle neighbor highlight
  P                 - Pause
  R                 - Restart (after game over)
  Esc/B             - Leave the match
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot

Examples:
  reversi play
  reversi play --difficulty hard --color light
  reversi play reversi_duel
  reversi play --width 6 --height 6
  reversi play --config ./my-reversi.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := reversi.ModeCPU
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'reversi list' to see available modes.")
		os.Exit(1)
	}

	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}
	reversi.Configure(settings)

	logger, closer, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	game, err := registry.Create(mode)
	if err != nil {
		fail("creating game: %v", err)
	}

	// Continue without storage; the match still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	runErr := tui.Run(game, store, terminalRuntime(), logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// terminalRuntime sizes the runtime config to the current terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
