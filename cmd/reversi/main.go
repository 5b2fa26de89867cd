// reversi is the classic disk-flipping board game for the terminal.
//
// Usage:
//
//	reversi list              - List available modes
//	reversi play [mode]       - Play a match (default: against the CPU)
//	reversi menu              - Pick modes and settings interactively
//	reversi serve             - Start SSH server for remote play
//	reversi scores [mode]     - Show recorded results
//	reversi config <command>  - Manage the config file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible CPU play
//	--db <path>         - Set database path (default: ~/.reversi/results.db)
//	--config <path>     - Use a custom config file
//	--log-level <lvl>   - debug, info, warn or error (default: warn)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// Match settings, shared by play, menu and serve
	flagWidth      int
	flagHeight     int
	flagColor      string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reversi",
	Short: "Reversi - flip disks in your terminal",
	Long: `Reversi is the classic board game of outflanking disks, played in
your terminal against the computer or a friend on the same keyboard.

Available commands:
  list     - Show all available modes
  play     - Play a match directly
  menu     - Interactive mode and settings picker
  serve    - Start SSH server for remote play
  scores   - View recorded results
  config   - Create or inspect the config file

Examples:
  reversi play
  reversi play reversi_duel --width 6 --height 6
  reversi play --color light --difficulty hard
  reversi menu
  reversi serve --ssh :2222
  reversi scores`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.reversi/results.db", "Path to results database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default: XDG state dir for TUI commands, stderr for serve)")

	pf.IntVar(&flagWidth, "width", 0, "Board width in columns (overrides config)")
	pf.IntVar(&flagHeight, "height", 0, "Board height in rows (overrides config)")
	pf.StringVar(&flagColor, "color", "", "Your color against the CPU: dark or light")
	pf.StringVar(&flagDifficulty, "difficulty", "", "CPU strength: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the config file and applies command line overrides.
func loadSettings() (config.ReversiConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	config.Overrides{
		Width:      flagWidth,
		Height:     flagHeight,
		Color:      flagColor,
		Difficulty: flagDifficulty,
	}.Apply(&cfg)

	return cfg, cfg.Validate()
}

// newLogger builds the process logger. TUI commands log to a file so the
// alternate screen stays clean; serve logs to stderr.
func newLogger(toStderr bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	path := flagLogFile
	if path == "" && !toStderr {
		path, err = xdg.StateFile(filepath.Join("reversi", "reversi.log"))
		if err != nil {
			return nil, nil, fmt.Errorf("cannot resolve log path: %w", err)
		}
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "reversi",
		Level:           level,
	})
	return logger, closer, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
