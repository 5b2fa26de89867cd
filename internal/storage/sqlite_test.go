package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Result) int64 {
	t.Helper()
	id, err := store.SaveResult(r)
	if err != nil {
		t.Fatalf("SaveResult(%+v) failed: %v", r, err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs migrations again without error
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	store.Close()
}

func TestSaveResultGeneratesMatchID(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorDark, Dark: 40, Light: 24, Winner: ColorDark, Moves: 60})

	recent, err := store.RecentResults("reversi", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("RecentResults() returned %d rows, expected 1", len(recent))
	}
	r := recent[0]
	if len(r.MatchID) != 36 {
		t.Errorf("MatchID = %q, expected a generated UUID", r.MatchID)
	}
	if r.Dark != 40 || r.Light != 24 || r.Moves != 60 {
		t.Errorf("counts = %d/%d/%d, expected 40/24/60", r.Dark, r.Light, r.Moves)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	got, err := store.ResultByMatchID(r.MatchID)
	if err != nil || got == nil {
		t.Fatalf("ResultByMatchID() = %v, %v", got, err)
	}
	if got.ID != r.ID {
		t.Errorf("ResultByMatchID().ID = %d, expected %d", got.ID, r.ID)
	}

	missing, err := store.ResultByMatchID("no-such-match")
	if err != nil || missing != nil {
		t.Errorf("ResultByMatchID(missing) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestSaveResultRejectsDuplicateMatchID(t *testing.T) {
	store := openTestStore(t)
	r := Result{MatchID: "fixed", GameID: "reversi", PlayerColor: ColorDark, Winner: WinnerDraw}

	mustSave(t, store, r)
	if _, err := store.SaveResult(r); err == nil {
		t.Error("SaveResult() with a duplicate match ID should fail")
	}
}

func TestSaveResultValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		r    Result
	}{
		{"empty game", Result{PlayerColor: ColorDark, Winner: ColorDark}},
		{"bad color", Result{GameID: "reversi", PlayerColor: "red", Winner: ColorDark}},
		{"bad winner", Result{GameID: "reversi", PlayerColor: ColorDark, Winner: "nobody"}},
		{"negative disks", Result{GameID: "reversi", PlayerColor: ColorDark, Winner: ColorDark, Dark: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveResult(tt.r); !errors.Is(err, ErrInvalidResult) {
				t.Errorf("SaveResult() error = %v, expected ErrInvalidResult", err)
			}
		})
	}
}

func TestRecentAndBestResults(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorDark, Dark: 20, Light: 44, Winner: ColorLight})
	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorLight, Dark: 10, Light: 54, Winner: ColorLight})
	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorDark, Dark: 33, Light: 31, Winner: ColorDark})
	mustSave(t, store, Result{GameID: "reversi_duel", PlayerColor: ColorDark, Dark: 64, Light: 0, Winner: ColorDark})

	recent, err := store.RecentResults("reversi", 2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentResults() returned %d rows, expected 2", len(recent))
	}
	if recent[0].Dark != 33 || recent[1].Light != 54 {
		t.Errorf("RecentResults() order wrong: %+v", recent)
	}

	best, err := store.BestResults("reversi", 10)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}
	want := []int{54, 33, 20}
	if len(best) != len(want) {
		t.Fatalf("BestResults() returned %d rows, expected %d", len(best), len(want))
	}
	for i, w := range want {
		if got := best[i].PlayerDisks(); got != w {
			t.Errorf("best[%d].PlayerDisks() = %d, expected %d", i, got, w)
		}
	}

	all, err := store.RecentResults("", 10)
	if err != nil {
		t.Fatalf("RecentResults(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("RecentResults(all) returned %d rows, expected 4", len(all))
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("reversi")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Games != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty table = %+v", empty)
	}

	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorDark, Dark: 40, Light: 24, Winner: ColorDark})
	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorLight, Dark: 40, Light: 24, Winner: ColorDark})
	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorDark, Dark: 32, Light: 32, Winner: WinnerDraw})
	mustSave(t, store, Result{GameID: "reversi_duel", PlayerColor: ColorDark, Dark: 50, Light: 14, Winner: ColorDark})

	stats, err := store.Stats("reversi")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 3 || stats.Wins != 1 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("Stats() = %+v, expected 3 games: 1 win, 1 loss, 1 draw", stats)
	}
	if stats.BestDisks != 40 {
		t.Errorf("BestDisks = %d, expected 40", stats.BestDisks)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}

	total, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats(all) failed: %v", err)
	}
	if total.Games != 4 || total.BestDisks != 50 {
		t.Errorf("Stats(all) = %+v, expected 4 games, best 50", total)
	}
}

func TestClearResults(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "reversi", PlayerColor: ColorDark, Winner: WinnerDraw})
	mustSave(t, store, Result{GameID: "reversi_duel", PlayerColor: ColorDark, Winner: WinnerDraw})

	if err := store.ClearResults("reversi"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	left, _ := store.RecentResults("reversi", 10)
	if len(left) != 0 {
		t.Errorf("reversi has %d results after clear, expected 0", len(left))
	}
	other, _ := store.RecentResults("reversi_duel", 10)
	if len(other) != 1 {
		t.Errorf("reversi_duel has %d results, expected 1", len(other))
	}
}

func TestResultOutcome(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{Result{PlayerColor: ColorDark, Winner: ColorDark}, "win"},
		{Result{PlayerColor: ColorLight, Winner: ColorDark}, "loss"},
		{Result{PlayerColor: ColorLight, Winner: WinnerDraw}, "draw"},
	}
	for _, tt := range tests {
		if got := tt.r.Outcome(); got != tt.want {
			t.Errorf("Outcome(%s vs %s) = %s, expected %s", tt.r.PlayerColor, tt.r.Winner, got, tt.want)
		}
	}
}
