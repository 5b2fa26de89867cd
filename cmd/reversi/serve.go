package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/platform/tui"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Reversi SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode picker and its
own match. Results are stored per-server in one shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, generates a key in the XDG data directory

Examples:
  reversi serve                           # Listen on :23234
  reversi serve --ssh :2222               # Listen on port 2222
  reversi serve --host-key ./my_host_key  # Use specific host key
  reversi serve --difficulty hard         # Default CPU strength for sessions

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Settings = settings

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Reversi SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(cmd.Context()); err != nil {
		fail("server: %v", err)
	}
}
