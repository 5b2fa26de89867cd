package reversi

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/config"
	platformcore "github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
	"github.com/vovakirdan/tui-reversi/internal/registry"
)

var testRuntime = platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}

func testConfig() config.ReversiConfig {
	cfg := config.DefaultReversiConfig()
	cfg.Player.AgentDelayMS = 0
	return cfg
}

// scriptedAgent answers with a fixed list of moves, then passes.
type scriptedAgent struct {
	moves []core.Position
	next  int
}

func (a *scriptedAgent) Name() string { return "Scripted" }

func (a *scriptedAgent) Decide(_ context.Context, _ View, _ core.State) <-chan Decision {
	ch := make(chan Decision, 1)
	if a.next < len(a.moves) {
		ch <- Decision{Pos: a.moves[a.next]}
		a.next++
	} else {
		ch <- Decision{Pass: true}
	}
	close(ch)
	return ch
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// loadBoard swaps in a prepared position with turn to move.
func loadBoard(t *testing.T, g *Game, rows []string, turn core.State) {
	t.Helper()
	b, err := core.Parse(rows...)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopAgent()
	g.board = b
	g.turn = turn
	g.gameOver = false
	g.message = ""
	g.cursor = NewCursor(b.Height(), b.Width(), core.Pos(0, 0))
	g.beginTurn()
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeCPU, ModeDuel} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestDuelOpeningMove(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())

	snap := g.Snapshot()
	if snap.Turn != core.Dark {
		t.Fatalf("first turn = %v, expected dark", snap.Turn)
	}
	if snap.Cursor != core.Pos(3, 3) {
		t.Errorf("initial cursor = %v, expected (3,3)", snap.Cursor)
	}
	if len(snap.Legal) != 4 {
		t.Errorf("opening legal moves = %d, expected 4", len(snap.Legal))
	}

	res := g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))
	if len(res.Events) == 0 || !strings.Contains(res.Events[0], "Dark plays (2,3)") {
		t.Errorf("Events = %v, expected a Dark placement", res.Events)
	}
	if res.State.Score != 4 {
		t.Errorf("Score = %d, expected 4 dark disks", res.State.Score)
	}

	snap = g.Snapshot()
	if snap.Turn != core.Light {
		t.Errorf("turn after move = %v, expected light", snap.Turn)
	}
	if snap.LastMove == nil || *snap.LastMove != core.Pos(2, 3) {
		t.Errorf("LastMove = %v, expected (2,3)", snap.LastMove)
	}
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", snap.Moves)
	}
}

func TestIllegalHumanMoveKeepsTurn(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())
	before := g.Snapshot().Board

	// The cursor starts on an occupied seed cell
	res := g.Step(frame(platformcore.ActionConfirm))
	if len(res.Events) != 0 {
		t.Errorf("Events = %v, expected none", res.Events)
	}

	snap := g.Snapshot()
	if snap.Board != before {
		t.Errorf("board changed after illegal move:\n%s", snap.Board)
	}
	if snap.Turn != core.Dark {
		t.Errorf("turn = %v, expected dark", snap.Turn)
	}
	if !strings.Contains(snap.Message, "cannot play") {
		t.Errorf("Message = %q, expected an illegal move notice", snap.Message)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	c := NewCursor(3, 4, core.Pos(9, -2))
	if c.Pos() != core.Pos(2, 0) {
		t.Fatalf("NewCursor clamp = %v, expected (2,0)", c.Pos())
	}

	tests := []struct {
		name   string
		action platformcore.Action
		times  int
		want   core.Position
	}{
		{"down at bottom edge", platformcore.ActionDown, 3, core.Pos(2, 0)},
		{"left at left edge", platformcore.ActionLeft, 1, core.Pos(2, 0)},
		{"right to far edge", platformcore.ActionRight, 10, core.Pos(2, 3)},
		{"up to top edge", platformcore.ActionUp, 10, core.Pos(0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range tt.times {
				c.Apply(frame(tt.action))
			}
			if c.Pos() != tt.want {
				t.Errorf("Pos() = %v, expected %v", c.Pos(), tt.want)
			}
		})
	}
}

func TestPassHandsTurnToOpponent(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())

	// Dark cannot move, Light can capture from the right edge
	loadBoard(t, g, []string{"LD."}, core.Dark)

	snap := g.Snapshot()
	if snap.Turn != core.Light {
		t.Fatalf("turn = %v, expected light after dark passes", snap.Turn)
	}
	if !strings.Contains(snap.Message, "passes") {
		t.Errorf("Message = %q, expected a pass notice", snap.Message)
	}

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionConfirm))

	snap = g.Snapshot()
	if snap.Board != "LLL" {
		t.Errorf("board = %q, expected LLL", snap.Board)
	}
	if !snap.GameOver {
		t.Fatal("game should be over on a full board")
	}

	res, ok := g.Result()
	if !ok {
		t.Fatal("Result() not available after game over")
	}
	if res.Winner != core.Light || res.Outcome() != "loss" {
		t.Errorf("Result = %+v (%s), expected light win and a dark loss", res, res.Outcome())
	}
}

func TestDegenerateBoardEndsImmediately(t *testing.T) {
	cfg := testConfig()
	cfg.Board.Width, cfg.Board.Height = 1, 1

	g := New(ModeDuel)
	g.ResetWith(testRuntime, cfg)

	if !g.State().GameOver {
		t.Fatal("1x1 board should be over at once")
	}
	if _, ok := g.Result(); !ok {
		t.Error("Result() should be available")
	}

	// Input is ignored once the game is over
	g.Step(frame(platformcore.ActionConfirm))
	if g.Snapshot().Moves != 0 {
		t.Error("moves recorded after game over")
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())
	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))

	g.Step(frame(platformcore.ActionRestart))
	if g.Snapshot().Moves != 1 {
		t.Fatal("restart should be ignored mid-game")
	}

	loadBoard(t, g, []string{"DDD"}, core.Light)
	if !g.State().GameOver {
		t.Fatal("full board should end the game")
	}
	g.Step(frame(platformcore.ActionRestart))

	snap := g.Snapshot()
	if snap.GameOver || snap.Moves != 0 {
		t.Errorf("after restart GameOver=%v Moves=%d, expected a fresh game", snap.GameOver, snap.Moves)
	}
	if snap.Score != (core.Score{Dark: 2, Light: 2, Empty: 60}) {
		t.Errorf("Score after restart = %+v", snap.Score)
	}
}

func TestAgentReplyViaChannel(t *testing.T) {
	agent := &scriptedAgent{moves: []core.Position{core.Pos(2, 2)}}
	g := NewWithAgent(agent)
	g.ResetWith(testRuntime, testConfig())

	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))
	if !g.Snapshot().ThinkingCPU {
		t.Fatal("CPU should be thinking after the human move")
	}

	res := g.Step(frame())
	if len(res.Events) == 0 || !strings.Contains(res.Events[0], "Light plays (2,2)") {
		t.Errorf("Events = %v, expected the CPU placement", res.Events)
	}

	snap := g.Snapshot()
	if snap.Turn != core.Dark || snap.ThinkingCPU {
		t.Errorf("turn = %v thinking = %v, expected dark to move", snap.Turn, snap.ThinkingCPU)
	}
	if snap.Score.Dark != 3 || snap.Score.Light != 3 {
		t.Errorf("Score = %+v, expected 3-3", snap.Score)
	}
}

func TestAgentThinkDelay(t *testing.T) {
	agent := &scriptedAgent{moves: []core.Position{core.Pos(2, 2)}}
	cfg := testConfig()
	cfg.Player.AgentDelayMS = 100 // 3 ticks at 30 tps

	g := NewWithAgent(agent)
	g.ResetWith(testRuntime, cfg)
	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))

	for i := range 2 {
		g.Step(frame())
		if !g.Snapshot().ThinkingCPU {
			t.Fatalf("CPU moved after %d ticks, expected a delay of 3", i+1)
		}
	}
	g.Step(frame())
	if g.Snapshot().ThinkingCPU {
		t.Error("CPU should have moved after the delay")
	}
}

func TestIllegalAgentMoveFallsBack(t *testing.T) {
	agent := &scriptedAgent{moves: []core.Position{core.Pos(0, 0)}}
	g := NewWithAgent(agent)
	g.ResetWith(testRuntime, testConfig())

	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))
	res := g.Step(frame())

	if len(res.Events) < 2 || !strings.Contains(res.Events[0], "cpu fallback") {
		t.Fatalf("Events = %v, expected a fallback notice", res.Events)
	}
	if !strings.Contains(res.Events[1], "Light plays (2,2)") {
		t.Errorf("fallback move = %q, expected the first legal move (2,2)", res.Events[1])
	}
}

func TestCPUMovesFirstForLightHuman(t *testing.T) {
	agent := &scriptedAgent{moves: []core.Position{core.Pos(2, 3)}}
	cfg := testConfig()
	cfg.Player.Color = "light"

	g := NewWithAgent(agent)
	g.ResetWith(testRuntime, cfg)

	if !g.Snapshot().ThinkingCPU {
		t.Fatal("CPU should open as dark")
	}
	res := g.Step(frame())
	if res.State.Score != 1 {
		t.Errorf("Score = %d, expected 1 light disk after the CPU opening", res.State.Score)
	}
	if g.Snapshot().Turn != core.Light {
		t.Error("human light should be to move")
	}
}

func TestRealAgentPlaysLegalMove(t *testing.T) {
	g := New(ModeCPU)
	g.ResetWith(testRuntime, testConfig())
	defer g.Close()

	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))

	deadline := time.Now().Add(2 * time.Second)
	for g.Snapshot().ThinkingCPU {
		if time.Now().After(deadline) {
			t.Fatal("CPU did not answer in time")
		}
		g.Step(frame())
		time.Sleep(time.Millisecond)
	}

	snap := g.Snapshot()
	if snap.Moves != 2 {
		t.Errorf("Moves = %d, expected 2", snap.Moves)
	}
	if snap.Score.Dark+snap.Score.Light != 6 {
		t.Errorf("Score = %+v, expected 6 disks", snap.Score)
	}
}

func TestTogglesAndPause(t *testing.T) {
	g := New(ModeDuel)
	cfg := testConfig()
	cfg.Display.ShowHints = true
	g.ResetWith(testRuntime, cfg)

	g.mu.Lock()
	suggested := len(g.board.Suggested())
	g.mu.Unlock()
	if suggested != 4 {
		t.Errorf("Suggested() = %d cells, expected 4 with hints on", suggested)
	}

	g.Step(frame(platformcore.ActionToggleHints, platformcore.ActionToggleNeighbors))
	snap := g.Snapshot()
	if snap.ShowHints || !snap.ShowNeighbors {
		t.Errorf("ShowHints=%v ShowNeighbors=%v, expected false/true", snap.ShowHints, snap.ShowNeighbors)
	}
	g.mu.Lock()
	suggested = len(g.board.Suggested())
	g.mu.Unlock()
	if suggested != 0 {
		t.Errorf("Suggested() = %d cells, expected none with hints off", suggested)
	}

	g.Step(frame(platformcore.ActionPause))
	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))
	if g.Snapshot().Moves != 0 {
		t.Error("move accepted while paused")
	}
	g.Step(frame(platformcore.ActionPause))
	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))
	if g.Snapshot().Moves != 1 {
		t.Error("move rejected after unpause")
	}
}

func TestPreviewFollowsCursor(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())

	g.Step(frame(platformcore.ActionUp))
	snap := g.Snapshot()
	if len(snap.Preview) != 1 || snap.Preview[0] != core.Pos(3, 3) {
		t.Errorf("Preview at (2,3) = %v, expected [(3,3)]", snap.Preview)
	}

	g.Step(frame(platformcore.ActionUp))
	if p := g.Snapshot().Preview; len(p) != 0 {
		t.Errorf("Preview at (1,3) = %v, expected none", p)
	}
}

func TestRender(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())

	s := platformcore.NewScreen(80, 24)
	g.Render(s)

	if !strings.Contains(s.Row(0), "Reversi Duel") {
		t.Errorf("HUD = %q, expected the title", s.Row(0))
	}
	out := s.String()
	// Two dark disks on the board and one in the HUD
	if n := strings.Count(out, "●"); n != 3 {
		t.Errorf("dark glyphs = %d, expected 3", n)
	}
	if !strings.Contains(out, "a  b  c  d") {
		t.Error("column labels missing")
	}

	small := platformcore.NewScreen(20, 6)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("small screen should show a resize notice:\n%s", small.String())
	}
}

func TestRenderHighlightsCursor(t *testing.T) {
	g := New(ModeDuel)
	g.ResetWith(testRuntime, testConfig())

	s := platformcore.NewScreen(80, 24)
	g.Render(s)

	found := false
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y).Style.Bg == bgCursor {
				found = true
			}
		}
	}
	if !found {
		t.Error("no cell drawn with the cursor background")
	}
}
