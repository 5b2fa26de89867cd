// Package reversi provides the Reversi board game: a human against the CPU,
// or two humans sharing one keyboard.
package reversi

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-reversi/internal/config"
	platformcore "github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
	"github.com/vovakirdan/tui-reversi/internal/registry"
)

// Mode IDs registered with the platform.
const (
	ModeCPU  = "reversi"
	ModeDuel = "reversi_duel"
)

// Configuration shared by every new game, set by the CLI before launch.
var (
	settingsMu sync.RWMutex
	configured *config.ReversiConfig
	configPath string
)

// SetConfigPath sets the custom config path used when Configure was not called.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// Configure fixes the configuration used by subsequent Resets.
func Configure(cfg config.ReversiConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configured = &cfg
}

func currentConfig() config.ReversiConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	if configured != nil {
		return *configured
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.DefaultReversiConfig()
	}
	return cfg
}

func init() {
	registry.Register(ModeCPU, "Play against the computer", func() registry.Game {
		return New(ModeCPU)
	})
	registry.Register(ModeDuel, "Two players, one keyboard", func() registry.Game {
		return New(ModeDuel)
	})
}

// Game implements a Reversi match.
// The CPU agent runs on its own goroutine, so every board access goes
// through mu.
type Game struct {
	mode     string
	newAgent func(preset config.DifficultyPreset, seed int64) Agent

	mu      sync.Mutex
	cfg     config.ReversiConfig
	runtime platformcore.RuntimeConfig
	rng     *rand.Rand
	board   *core.Board
	cursor  Cursor
	turn    core.State
	human   core.State // Empty in duel mode
	agent   Agent

	// Pending CPU decision
	pending    <-chan Decision
	cancel     context.CancelFunc
	thinkTicks int
	waited     int

	// Status
	moves         int
	last          core.Position
	hasLast       bool
	message       string
	showHints     bool
	showNeighbors bool
	paused        bool
	gameOver      bool
}

// New creates a game for a mode ID. Unknown IDs play against the CPU.
func New(mode string) *Game {
	if mode != ModeDuel {
		mode = ModeCPU
	}
	return &Game{mode: mode, newAgent: AgentFor}
}

// NewWithAgent creates a CPU game that uses agent for every match.
func NewWithAgent(agent Agent) *Game {
	g := New(ModeCPU)
	g.newAgent = func(config.DifficultyPreset, int64) Agent { return agent }
	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDuel {
		return "Reversi Duel"
	}
	return "Reversi"
}

// Reset starts a new match with the current configuration.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	cfg := currentConfig()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset(runtime, cfg)
}

// ResetWith starts a new match with an explicit configuration.
func (g *Game) ResetWith(runtime platformcore.RuntimeConfig, cfg config.ReversiConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset(runtime, cfg)
}

func (g *Game) reset(runtime platformcore.RuntimeConfig, cfg config.ReversiConfig) {
	g.stopAgent()

	g.runtime = runtime
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.moves = 0
	g.hasLast = false
	g.message = ""
	g.showHints = cfg.Display.ShowHints
	g.showNeighbors = cfg.Display.ShowNeighbors
	g.paused = false
	g.gameOver = false
	g.thinkTicks = runtime.TicksFor(cfg.Player.AgentDelayMS)

	board, err := core.NewBoard(cfg.Board.Width, cfg.Board.Height)
	if err != nil {
		g.board = nil
		g.gameOver = true
		g.message = err.Error()
		return
	}
	board.Setup()
	g.board = board

	g.human = core.Empty
	g.agent = nil
	if g.mode == ModeCPU {
		g.human = core.Dark
		if cfg.Player.Color == "light" {
			g.human = core.Light
		}
		g.agent = g.newAgent(cfg.Player.Difficulty, g.rng.Int63())
	}

	// Start near the centre, on the top-left seed
	g.cursor = NewCursor(board.Height(), board.Width(),
		core.Pos((board.Height()+1)/2-1, (board.Width()+1)/2-1))
	g.turn = core.Dark
	g.beginTurn()
}

// Close abandons any pending CPU decision.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopAgent()
}

// Step advances the match by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if in.Has(platformcore.ActionRestart) && g.gameOver {
		runtime := g.runtime
		runtime.Seed = g.nextSeed()
		g.reset(runtime, g.cfg)
		return platformcore.StepResult{State: g.state()}
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.board == nil {
		return platformcore.StepResult{State: g.state()}
	}

	if in.Has(platformcore.ActionToggleHints) {
		g.showHints = !g.showHints
	}
	if in.Has(platformcore.ActionToggleNeighbors) {
		g.showNeighbors = !g.showNeighbors
	}
	g.cursor.Apply(in)

	var events []string
	if g.isHumanTurn() && in.Has(platformcore.ActionConfirm) {
		events = g.humanMove()
	} else if g.pending != nil {
		events = g.pollAgent()
	}

	g.refreshOverlays()
	return platformcore.StepResult{State: g.state(), Events: events}
}

// humanMove places the current color at the cursor.
func (g *Game) humanMove() []string {
	p := g.cursor.Pos()
	if _, err := g.board.ApplyMove(p.Row, p.Col, g.turn); err != nil {
		if errors.Is(err, core.ErrIllegalMove) {
			g.message = fmt.Sprintf("%s cannot play %s", colorName(g.turn), p)
		} else {
			g.message = err.Error()
		}
		return nil
	}
	return g.afterMove(p)
}

// pollAgent joins the CPU decision once the think delay has passed.
func (g *Game) pollAgent() []string {
	g.waited++
	if g.waited < g.thinkTicks {
		return nil
	}

	var d Decision
	select {
	case got, ok := <-g.pending:
		if !ok {
			got = Decision{Err: errors.New("agent stopped without deciding")}
		}
		d = got
	default:
		return nil
	}
	g.stopAgent()

	if d.Err == nil && !d.Pass {
		_, err := g.board.ApplyMove(d.Pos.Row, d.Pos.Col, g.turn)
		if err == nil {
			return g.afterMove(d.Pos)
		}
		d.Err = err
	}
	if d.Err == nil {
		d.Err = errors.New("agent passed with a legal move available")
	}

	// The board is authoritative: fall back to its first legal move.
	legal, _ := g.board.LegalDestinations(g.turn)
	if len(legal) == 0 {
		g.turn = g.turn.Opponent()
		return append([]string{"cpu passes"}, g.beginTurn()...)
	}
	p := legal[0]
	if _, err := g.board.ApplyMove(p.Row, p.Col, g.turn); err != nil {
		g.message = err.Error()
		return nil
	}
	events := []string{fmt.Sprintf("cpu fallback: %v", d.Err)}
	return append(events, g.afterMove(p)...)
}

// afterMove records a successful placement at p and hands over the turn.
func (g *Game) afterMove(p core.Position) []string {
	g.moves++
	g.last = p
	g.hasLast = true
	g.message = ""

	events := []string{fmt.Sprintf("%s plays %s flipping %d", colorName(g.turn), p, len(g.board.LastFlips()))}
	g.turn = g.turn.Opponent()
	return append(events, g.beginTurn()...)
}

// beginTurn settles passes and game over for g.turn, then starts the CPU
// if it is to move.
func (g *Game) beginTurn() []string {
	var events []string

	if g.board.IsGameOver() {
		g.gameOver = true
		g.board.ClearTransient()
		g.message = g.finalMessage()
		return append(events, "game over: "+g.finalMessage())
	}

	if !g.board.HasLegalMove(g.turn) {
		g.message = fmt.Sprintf("%s has no move and passes", colorName(g.turn))
		events = append(events, colorName(g.turn)+" passes")
		g.turn = g.turn.Opponent()
	}

	if g.isAgentTurn() {
		ctx, cancel := context.WithCancel(context.Background())
		g.cancel = cancel
		g.waited = 0
		g.pending = g.agent.Decide(ctx, NewView(&g.mu, g.board), g.turn)
	}

	g.refreshOverlays()
	return events
}

// refreshOverlays recomputes suggestions and the capture preview for the
// human to move.
func (g *Game) refreshOverlays() {
	if g.board == nil {
		return
	}
	g.board.ClearTransient()
	if g.gameOver || !g.isHumanTurn() {
		return
	}
	if g.showHints {
		_, _ = g.board.Suggest(g.turn)
	}
	p := g.cursor.Pos()
	_, _ = g.board.PreviewCaptures(p.Row, p.Col, g.turn)
}

func (g *Game) stopAgent() {
	if g.cancel != nil {
		g.cancel()
	}
	g.cancel = nil
	g.pending = nil
	g.waited = 0
}

func (g *Game) isAgentTurn() bool {
	return g.agent != nil && g.turn != g.human
}

func (g *Game) isHumanTurn() bool {
	return !g.isAgentTurn()
}

func (g *Game) nextSeed() int64 {
	if g.rng == nil {
		return 0
	}
	return g.rng.Int63()
}

// scoreColor is the color whose disk count is reported as the score.
func (g *Game) scoreColor() core.State {
	if g.human.IsColor() {
		return g.human
	}
	return core.Dark
}

func (g *Game) finalMessage() string {
	s := g.board.Count()
	switch s.Leader() {
	case core.Empty:
		return fmt.Sprintf("Draw %d-%d", s.Dark, s.Light)
	case core.Dark:
		return fmt.Sprintf("Dark wins %d-%d", s.Dark, s.Light)
	default:
		return fmt.Sprintf("Light wins %d-%d", s.Light, s.Dark)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() platformcore.GameState {
	score := 0
	if g.board != nil {
		score = g.board.Count().Of(g.scoreColor())
	}
	return platformcore.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func colorName(s core.State) string {
	switch s {
	case core.Dark:
		return "Dark"
	case core.Light:
		return "Light"
	default:
		return s.String()
	}
}
