package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

// Scoreboard layout constants
const (
	maxResults     = 100 // Max results to load per mode
	tableMinHeight = 3
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the results screen.
type ScoreboardModel struct {
	modes      []registry.ModeInfo
	modeCursor int
	store      *storage.Store
	results    []storage.Result
	stats      *storage.GameStats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	styles     scoreboardStyles
	width      int
	height     int
	quitting   bool
	goingBack  bool // True if user pressed back (not quit)
}

type scoreboardStyles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	box       lipgloss.Style
	empty     lipgloss.Style
	faint     lipgloss.Style
}

func newScoreboardStyles(r *lipgloss.Renderer) scoreboardStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return scoreboardStyles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		tab:   r.NewStyle().Foreground(lipgloss.Color("241")),
		activeTab: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		empty: r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4),
		faint: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return NewScoreboardModelWith(store, width, height, nil)
}

// NewScoreboardModelWith creates a scoreboard that renders through r.
func NewScoreboardModelWith(store *storage.Store, width, height int, r *lipgloss.Renderer) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		styles: newScoreboardStyles(r),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(m.modes) > 0 {
		m.loadResults(m.modes[0].ID)
	}
	return m
}

// createTable creates the results table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 6},
		{Title: "Side", Width: 6},
		{Title: "Dark", Width: 5},
		{Title: "Light", Width: 5},
		{Title: "Moves", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(tableMinHeight, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadResults loads the recent results and totals for a mode.
func (m *ScoreboardModel) loadResults(gameID string) {
	m.results, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.results, m.loadErr = m.store.RecentResults(gameID, maxResults)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(gameID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded results.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Outcome(),
			r.PlayerColor,
			fmt.Sprintf("%d", r.Dark),
			fmt.Sprintf("%d", r.Light),
			fmt.Sprintf("%d", r.Moves),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.modeCursor = (m.modeCursor + delta + len(m.modes)) % len(m.modes)
	m.loadResults(m.modes[m.modeCursor].ID)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("RESULTS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.styles.box.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(m.styles.faint.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.modeCursor {
			tabs[i] = m.styles.activeTab.Render(mode.Title)
		} else {
			tabs[i] = m.styles.tab.Render(" " + mode.Title + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) statsLine() string {
	if m.loadErr != nil {
		return "Could not load results: " + m.loadErr.Error()
	}
	if m.stats == nil || m.stats.Games == 0 {
		return ""
	}
	s := m.stats
	return fmt.Sprintf("Played %d   Won %d   Lost %d   Drawn %d   Best %d disks",
		s.Games, s.Wins, s.Losses, s.Draws, s.BestDisks)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.results) == 0 {
		return m.styles.empty.Render("No matches recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
