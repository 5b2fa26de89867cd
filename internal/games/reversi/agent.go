package reversi

import (
	"context"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
)

// View is a read-only window onto a board that is shared with the turn
// loop. Every call takes the owning game's lock.
type View struct {
	mu    *sync.Mutex
	board *core.Board
}

// NewView wraps board behind mu.
func NewView(mu *sync.Mutex, board *core.Board) View {
	return View{mu: mu, board: board}
}

// LegalDestinations returns the legal moves of color.
func (v View) LegalDestinations(color core.State) ([]core.Position, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board.LegalDestinations(color)
}

// PreviewCaptures returns the disks a placement would flip without
// touching the board's recorded preview.
func (v View) PreviewCaptures(p core.Position, color core.State) []core.Position {
	v.mu.Lock()
	defer v.mu.Unlock()

	var out []core.Position
	for _, d := range core.Directions {
		out = append(out, v.board.CaptivesInDirection(p, color, d)...)
	}
	return out
}

// Size returns the board width and height.
func (v View) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board.Width(), v.board.Height()
}

// Decision is an agent's answer for one turn.
type Decision struct {
	Pos  core.Position
	Pass bool
	Err  error
}

// Agent chooses moves for a computer-controlled color.
// Decide returns at once; the answer arrives on the channel, which is
// closed afterwards. Cancelling ctx abandons the decision.
type Agent interface {
	Name() string
	Decide(ctx context.Context, view View, color core.State) <-chan Decision
}

// scorer ranks a legal move; higher is better.
type scorer func(view View, p core.Position, color core.State) int

// searchAgent picks the best scoring legal move, breaking ties at random.
// A nil score makes every move equal, which is a uniform random choice.
type searchAgent struct {
	name  string
	score scorer

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
func NewRandomAgent(seed int64) Agent {
	return &searchAgent{name: "Random", rng: rand.New(rand.NewSource(seed))}
}

// NewGreedyAgent returns an agent that maximizes immediate captures.
func NewGreedyAgent(seed int64) Agent {
	return &searchAgent{
		name: "Greedy",
		rng:  rand.New(rand.NewSource(seed)),
		score: func(view View, p core.Position, color core.State) int {
			return len(view.PreviewCaptures(p, color))
		},
	}
}

// NewPositionalAgent returns an agent that values corners and edges and
// avoids the cells that give corners away, then counts captures.
func NewPositionalAgent(seed int64) Agent {
	return &searchAgent{
		name: "Positional",
		rng:  rand.New(rand.NewSource(seed)),
		score: func(view View, p core.Position, color core.State) int {
			w, h := view.Size()
			return 10*squareWeight(p, w, h) + len(view.PreviewCaptures(p, color))
		},
	}
}

// AgentFor maps a difficulty preset to an agent.
func AgentFor(preset config.DifficultyPreset, seed int64) Agent {
	switch preset {
	case config.DifficultyEasy:
		return NewRandomAgent(seed)
	case config.DifficultyHard:
		return NewPositionalAgent(seed)
	default:
		return NewGreedyAgent(seed)
	}
}

func (a *searchAgent) Name() string {
	return a.name
}

func (a *searchAgent) Decide(ctx context.Context, view View, color core.State) <-chan Decision {
	out := make(chan Decision, 1)

	go func() {
		defer close(out)

		d := a.choose(view, color)
		select {
		case out <- d:
		case <-ctx.Done():
		}
	}()

	return out
}

func (a *searchAgent) choose(view View, color core.State) Decision {
	legal, err := view.LegalDestinations(color)
	if err != nil {
		return Decision{Err: err}
	}
	if len(legal) == 0 {
		return Decision{Pass: true}
	}

	best := legal
	if a.score != nil {
		best = best[:0:0]
		top := 0
		for i, p := range legal {
			s := a.score(view, p, color)
			switch {
			case i == 0 || s > top:
				top = s
				best = append(best[:0], p)
			case s == top:
				best = append(best, p)
			}
		}
	}

	a.mu.Lock()
	i := a.rng.Intn(len(best))
	a.mu.Unlock()
	return Decision{Pos: best[i]}
}

// squareWeight rates a cell by its place on a w by h board.
func squareWeight(p core.Position, w, h int) int {
	edgeRow := p.Row == 0 || p.Row == h-1
	edgeCol := p.Col == 0 || p.Col == w-1
	nearRow := p.Row == 1 || p.Row == h-2
	nearCol := p.Col == 1 || p.Col == w-2

	switch {
	case edgeRow && edgeCol:
		return 10
	case (nearRow && nearCol) || (edgeRow && nearCol) || (nearRow && edgeCol):
		return -5
	case edgeRow || edgeCol:
		return 2
	default:
		return 0
	}
}
