package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/platform/tui"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and settings picker",
	Long: `Start Reversi in interactive menu mode.

Pick a mode, adjust the CPU difficulty and your color, then play.
Leaving a match with Esc returns you to the menu.

Controls:
  Up/Down/j/k     - Navigate modes
  Left/Right      - Change CPU difficulty
  C               - Switch your color
  Enter/Space     - Start the match
  Tab             - Results
  Q               - Quit

Examples:
  reversi menu
  reversi menu --width 10 --height 10
  reversi menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("could not open results database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalRuntime()

	for {
		menuResult, err := tui.RunMenu(cfg, settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		cfg = menuResult.Config
		settings = menuResult.Settings

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		reversi.Configure(settings)
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		quit, err := tui.RunEmbedded(game, store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if quit {
			return
		}
	}
}
