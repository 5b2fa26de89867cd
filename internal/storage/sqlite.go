// Package storage provides SQLite-based persistence for finished matches.
// Only outcomes are recorded (disk counts and winner), never positions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Side and winner values stored in the results table.
const (
	ColorDark  = "dark"
	ColorLight = "light"
	WinnerDraw = "draw"
)

// ErrInvalidResult is returned when a result has unknown colors or counts.
var ErrInvalidResult = errors.New("storage: invalid result")

// Store manages the SQLite database connection for the results ledger.
type Store struct {
	db *sql.DB
}

// Result is one finished match.
type Result struct {
	ID          int64
	MatchID     string // generated when empty
	GameID      string
	PlayerColor string // side the score is counted for
	Dark        int
	Light       int
	Winner      string // dark, light or draw
	Moves       int
	CreatedAt   time.Time
}

// PlayerDisks returns the disk count of PlayerColor.
func (r Result) PlayerDisks() int {
	if r.PlayerColor == ColorLight {
		return r.Light
	}
	return r.Dark
}

// Outcome returns "win", "loss" or "draw" from the player's side.
func (r Result) Outcome() string {
	switch r.Winner {
	case WinnerDraw:
		return "draw"
	case r.PlayerColor:
		return "win"
	default:
		return "loss"
	}
}

func (r Result) validate() error {
	if r.GameID == "" {
		return fmt.Errorf("%w: empty game id", ErrInvalidResult)
	}
	if r.PlayerColor != ColorDark && r.PlayerColor != ColorLight {
		return fmt.Errorf("%w: player color %q", ErrInvalidResult, r.PlayerColor)
	}
	switch r.Winner {
	case ColorDark, ColorLight, WinnerDraw:
	default:
		return fmt.Errorf("%w: winner %q", ErrInvalidResult, r.Winner)
	}
	if r.Dark < 0 || r.Light < 0 || r.Moves < 0 {
		return fmt.Errorf("%w: negative count", ErrInvalidResult)
	}
	return nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player_color TEXT NOT NULL,
			dark INTEGER NOT NULL DEFAULT 0,
			light INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished match and returns its row ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	if err := r.validate(); err != nil {
		return 0, err
	}
	if r.MatchID == "" {
		r.MatchID = uuid.NewString()
	}

	res, err := s.db.Exec(
		`INSERT INTO results (match_id, game_id, player_color, dark, light, winner, moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.GameID, r.PlayerColor, r.Dark, r.Light, r.Winner, r.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const resultColumns = `id, match_id, game_id, player_color, dark, light, winner, moves, created_at`

// ResultByMatchID retrieves a result by its match ID.
// Returns nil without error when no such match exists.
func (s *Store) ResultByMatchID(matchID string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE match_id = ?`,
		matchID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// RecentResults returns the latest results, newest first.
// An empty gameID matches every mode.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+` FROM results
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// BestResults returns the results with the most player disks.
// Ties keep the earlier match first.
func (s *Store) BestResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+` FROM results
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY CASE player_color WHEN 'light' THEN light ELSE dark END DESC, id ASC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// ClearResults deletes all results for the given mode.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a mode.
type GameStats struct {
	GameID     string
	Games      int
	Wins       int
	Losses     int
	Draws      int
	BestDisks  int
	LastPlayed time.Time
}

// Stats aggregates the results of a mode. An empty gameID covers every mode.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = player_color THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 'draw' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE player_color WHEN 'light' THEN light ELSE dark END), 0)
		 FROM results WHERE (? = '' OR game_id = ?)`,
		gameID, gameID,
	).Scan(&stats.Games, &stats.Wins, &stats.Draws, &stats.BestDisks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.Losses = stats.Games - stats.Wins - stats.Draws

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE (? = '' OR game_id = ?) ORDER BY id DESC LIMIT 1`,
		gameID, gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var r Result
	var createdAt any
	err := sc.Scan(&r.ID, &r.MatchID, &r.GameID, &r.PlayerColor,
		&r.Dark, &r.Light, &r.Winner, &r.Moves, &createdAt)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
