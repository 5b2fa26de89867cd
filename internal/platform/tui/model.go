package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

// configurable is implemented by games that accept a per-match configuration.
type configurable interface {
	ResetWith(runtime core.RuntimeConfig, cfg config.ReversiConfig)
}

// resulter is implemented by games that report a final outcome.
type resulter interface {
	Result() (reversi.Result, bool)
}

// GameModel is the Bubble Tea model that runs one game mode.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	runtime  core.RuntimeConfig
	settings *config.ReversiConfig // nil lets the game load its own
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	renderer *lipgloss.Renderer
	input    core.InputFrame
	state    core.GameState

	embedded    bool // Back returns to a menu instead of quitting
	quitting    bool
	backToMenu  bool
	resultSaved bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the clock.
func NewGameModel(game registry.Game, store *storage.Store, runtime core.RuntimeConfig, logger *log.Logger) GameModel {
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:    game,
		screen:  core.NewScreen(runtime.ScreenW, runtime.ScreenH-1),
		store:   store,
		runtime: runtime,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  logger,
		input:   core.NewInputFrame(),
	}
}

// WithSettings fixes the match configuration instead of the global one.
func (m GameModel) WithSettings(cfg config.ReversiConfig) GameModel {
	m.settings = &cfg
	return m
}

// WithRenderer sets the lipgloss renderer used for output.
func (m GameModel) WithRenderer(r *lipgloss.Renderer) GameModel {
	m.renderer = r
	return m
}

// Embedded makes Back return to the caller's menu instead of quitting.
func (m GameModel) Embedded() GameModel {
	m.embedded = true
	return m
}

// Init starts the match and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.reset()
	return tickCmd(m.runtime.TickRate)
}

func (m GameModel) reset() {
	if c, ok := m.game.(configurable); ok && m.settings != nil {
		c.ResetWith(m.runtime, *m.settings)
		return
	}
	m.game.Reset(m.runtime)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board keeps its state; only the canvas changes
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		registry.Release(m.game)
		return m, tea.Quit
	case core.ActionBack:
		registry.Release(m.game)
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.input.Set(action)
	}

	return m, nil
}

// handleTick advances the game by one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	wasOver := m.state.GameOver
	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	for _, e := range result.Events {
		m.logger.Debug("game event", "mode", m.game.ID(), "event", e)
	}

	// A restart clears game over
	if wasOver && !m.state.GameOver {
		m.resultSaved = false
	}
	if m.state.GameOver && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	return m, tickCmd(m.runtime.TickRate)
}

// saveResult records the finished match in the results ledger.
func (m *GameModel) saveResult() {
	r, ok := m.game.(resulter)
	if !ok {
		return
	}
	res, ok := r.Result()
	if !ok {
		return
	}

	rec := ResultRecord(res)
	m.logger.Info("match finished",
		"mode", rec.GameID,
		"dark", rec.Dark,
		"light", rec.Light,
		"winner", rec.Winner,
	)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveResult(rec); err != nil {
		m.logger.Warn("could not save result", "error", err)
	}
}

// ResultRecord converts a finished match to a ledger row.
func ResultRecord(res reversi.Result) storage.Result {
	winner := storage.WinnerDraw
	if res.Winner.IsColor() {
		winner = res.Winner.String()
	}
	return storage.Result{
		GameID:      res.Mode,
		PlayerColor: res.Player.String(),
		Dark:        res.Score.Dark,
		Light:       res.Score.Light,
		Winner:      winner,
		Moves:       res.Moves,
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path, err := xdg.DataFile(filepath.Join("reversi", "screenshots", name))
	if err != nil {
		return "", fmt.Errorf("tui: cannot resolve screenshot path: %w", err)
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.renderer != nil {
		helpStyle = m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	}
	return RenderScreenWith(m.screen, m.renderer) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for one game and blocks until it exits.
func Run(game registry.Game, store *storage.Store, runtime core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, runtime, logger)
	defer registry.Release(game)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// RunEmbedded runs a game that returns to the menu on Back.
// It reports whether the user quit instead.
func RunEmbedded(game registry.Game, store *storage.Store, runtime core.RuntimeConfig, logger *log.Logger) (quit bool, err error) {
	model := NewGameModel(game, store, runtime, logger).Embedded()
	defer registry.Release(game)

	p := tea.NewProgram(
		embeddedRunner{model},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if r, ok := final.(embeddedRunner); ok {
		return r.IsQuitting(), nil
	}
	return true, nil
}

// embeddedRunner ends the program when the game asks for the menu.
type embeddedRunner struct {
	GameModel
}

func (r embeddedRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		r.GameModel = gm
	}
	if r.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}
