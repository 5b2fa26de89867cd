package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresBest  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded results for a mode",
	Long: `Display totals and the most recent results for a mode
(default: reversi).

Examples:
  reversi scores
  reversi scores reversi_duel
  reversi scores --best
  reversi scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresBest, "best", false, "Order by disks held instead of date")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := reversi.ModeCPU
	if len(args) == 1 {
		mode = args[0]
	}

	info, ok := registry.Lookup(mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'reversi list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening results database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(mode); err != nil {
			fail("clearing results: %v", err)
		}
		fmt.Printf("Cleared results for %s.\n", info.Title)
		return
	}

	var results []storage.Result
	if flagScoresBest {
		results, err = store.BestResults(mode, flagScoresLimit)
	} else {
		results, err = store.RecentResults(mode, flagScoresLimit)
	}
	if err != nil {
		fail("retrieving results: %v", err)
	}

	fmt.Printf("Results - %s\n", info.Title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'reversi play %s' to record the first one!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %5s  %5s  %5s  %s\n", "#", "Result", "Side", "Dark", "Light", "Moves", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %5s  %5s  %5s  %s\n", "-", "------", "----", "----", "-----", "-----", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-6s  %-6s  %5d  %5d  %5d  %s\n",
			i+1, r.Outcome(), r.PlayerColor, r.Dark, r.Light, r.Moves,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(mode)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Played %d  Won %d  Lost %d  Drawn %d  Best %d disks\n",
		stats.Games, stats.Wins, stats.Losses, stats.Draws, stats.BestDisks)
}
