package reversi

import (
	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
)

// Snapshot is a copy of everything a viewer needs to know about a match.
type Snapshot struct {
	Mode          string
	Board         string // rows in the format accepted by core.Parse
	Turn          core.State
	Human         core.State // Empty in duel mode
	Cursor        core.Position
	Score         core.Score
	Legal         []core.Position
	Preview       []core.Position
	LastMove      *core.Position
	Moves         int
	Message       string
	ThinkingCPU   bool
	ShowHints     bool
	ShowNeighbors bool
	Paused        bool
	GameOver      bool
}

// Snapshot returns the current match state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Mode:          g.mode,
		Turn:          g.turn,
		Human:         g.human,
		Cursor:        g.cursor.Pos(),
		Moves:         g.moves,
		Message:       g.message,
		ThinkingCPU:   g.pending != nil,
		ShowHints:     g.showHints,
		ShowNeighbors: g.showNeighbors,
		Paused:        g.paused,
		GameOver:      g.gameOver,
	}
	if g.hasLast {
		last := g.last
		s.LastMove = &last
	}
	if g.board != nil {
		s.Board = g.board.String()
		s.Score = g.board.Count()
		if !g.gameOver {
			s.Legal, _ = g.board.LegalDestinations(g.turn)
		}
		s.Preview = g.board.Preview()
	}
	return s
}

// Result is the outcome of a finished match.
type Result struct {
	Mode   string
	Player core.State // the human, or Dark in duel mode
	Score  core.Score
	Winner core.State // Empty on a draw
	Moves  int
}

// Outcome returns "win", "loss" or "draw" for the player.
func (r Result) Outcome() string {
	switch r.Winner {
	case core.Empty:
		return "draw"
	case r.Player:
		return "win"
	default:
		return "loss"
	}
}

// Result returns the final outcome. ok is false while the match is running.
func (g *Game) Result() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.gameOver || g.board == nil {
		return Result{}, false
	}
	score := g.board.Count()
	return Result{
		Mode:   g.mode,
		Player: g.scoreColor(),
		Score:  score,
		Winner: score.Leader(),
		Moves:  g.moves,
	}, true
}
