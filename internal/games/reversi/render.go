package reversi

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-reversi/internal/config"
	platformcore "github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi/core"
)

// Layout constants, in terminal cells.
const (
	cellW     = 3 // " ● "
	labelW    = 3 // row numbers left of the board
	hudHeight = 2
)

var (
	styleBoard    = platformcore.Fg(platformcore.ColorGray).On(platformcore.ColorBoard)
	styleDark     = platformcore.Fg(platformcore.ColorBlack).On(platformcore.ColorBoard)
	styleLight    = platformcore.Fg(platformcore.ColorBrightWhite).On(platformcore.ColorBoard)
	styleHint     = platformcore.Fg(platformcore.ColorBrightYellow).On(platformcore.ColorBoard)
	styleFlip     = platformcore.Fg(platformcore.ColorRed).On(platformcore.ColorBoard)
	styleLabel    = platformcore.Fg(platformcore.ColorGray)
	styleFrame    = platformcore.Fg(platformcore.ColorGreen)
	styleHUD      = platformcore.Fg(platformcore.ColorCyan)
	styleMessage  = platformcore.Fg(platformcore.ColorYellow)
	bgCursor      = platformcore.ColorYellow
	bgNeighbor    = platformcore.ColorBlue
	bgLastMove    = platformcore.ColorGray
	overlayBorder = platformcore.Fg(platformcore.ColorBrightWhite)
)

// Render draws the match to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dst.Clear()
	g.renderHUD(dst)

	if g.board == nil {
		g.renderOverlay(dst, "No board", g.message)
		return
	}

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-1)
	block := platformcore.NewRect(0, 0, labelW+g.board.Width()*cellW+2, g.board.Height()+3)
	if block.W > area.W || block.H > area.H {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	block = block.CenterIn(area)

	g.renderBoard(dst, block)
	g.renderStatus(dst)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, g.finalMessage(), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	glyphs := g.glyphs()
	hud := " " + g.Title()
	if g.board != nil {
		s := g.board.Count()
		hud += fmt.Sprintf(" | %c Dark %d  %c Light %d | %s",
			glyphs.dark, s.Dark, glyphs.light, s.Light, g.turnLabel())
	}
	if g.agent != nil {
		hud += fmt.Sprintf(" | CPU: %s (%s)", g.agent.Name(), g.cfg.Player.Difficulty.Label())
	}
	dst.DrawTextStyled(0, 0, hud, styleHUD)

	for x := 0; x < dst.Width(); x++ {
		dst.SetStyled(x, 1, '─', styleLabel)
	}
}

func (g *Game) turnLabel() string {
	switch {
	case g.gameOver:
		return "Game over"
	case g.agent == nil:
		return colorName(g.turn) + " to move"
	case g.turn == g.human:
		return colorName(g.turn) + " to move (you)"
	default:
		return colorName(g.turn) + " to move (thinking)"
	}
}

// renderBoard draws labels, frame and cells inside block.
func (g *Game) renderBoard(dst *platformcore.Screen, block platformcore.Rect) {
	frame := platformcore.NewRect(block.X+labelW, block.Y+1, g.board.Width()*cellW+2, g.board.Height()+2)
	dst.DrawBox(frame)
	for y := frame.Y; y < frame.Bottom(); y++ {
		for x := frame.X; x < frame.Right(); x++ {
			if c := dst.GetCell(x, y); c.Rune != ' ' {
				dst.Paint(x, y, styleFrame)
			}
		}
	}

	// Column letters and row numbers
	for c := range g.board.Width() {
		dst.SetStyled(frame.X+1+c*cellW+1, block.Y, rune('a'+c), styleLabel)
	}
	for r := range g.board.Height() {
		dst.DrawTextStyled(block.X, frame.Y+1+r, fmt.Sprintf("%2d", r+1), styleLabel)
	}

	preview := make(map[core.Position]bool)
	for _, p := range g.board.Preview() {
		preview[p] = true
	}
	neighbors := make(map[core.Position]bool)
	if g.showNeighbors {
		cur := g.cursor.Pos()
		if around, err := g.board.NeighborsAt(cur.Row, cur.Col); err == nil {
			for _, p := range around {
				neighbors[p] = true
			}
		}
	}

	glyphs := g.glyphs()
	for r := range g.board.Height() {
		for c := range g.board.Width() {
			p := core.Pos(r, c)
			hint, err := g.board.Hint(r, c)
			if err != nil {
				continue
			}

			glyph, st := glyphs.empty, styleBoard
			switch hint {
			case core.Dark:
				glyph, st = glyphs.dark, styleDark
			case core.Light:
				glyph, st = glyphs.light, styleLight
			case core.LegalPreview:
				glyph, st = glyphs.hint, styleHint
			}
			if preview[p] {
				st.Fg = styleFlip.Fg
			}

			switch {
			case p == g.cursor.Pos() && !g.gameOver:
				st = st.On(bgCursor)
				if st.Fg == platformcore.ColorBrightWhite || st.Fg == platformcore.ColorBrightYellow {
					st.Fg = platformcore.ColorBlack
				}
			case neighbors[p]:
				st = st.On(bgNeighbor)
			case g.hasLast && p == g.last:
				st = st.On(bgLastMove)
			}

			x := frame.X + 1 + c*cellW
			y := frame.Y + 1 + r
			dst.SetStyled(x, y, ' ', st)
			dst.SetStyled(x+1, y, glyph, st)
			dst.SetStyled(x+2, y, ' ', st)
		}
	}
}

// renderStatus draws the message line at the bottom.
func (g *Game) renderStatus(dst *platformcore.Screen) {
	y := dst.Height() - 1
	msg := g.message
	if msg == "" && !g.gameOver {
		if preview := g.board.Preview(); len(preview) > 0 {
			msg = fmt.Sprintf("%s flips %d", g.cursor.Pos(), len(preview))
		}
	}
	dst.DrawTextStyled(1, y, msg, styleMessage)
}

// renderOverlay draws a centered two line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := platformcore.Max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := platformcore.NewRect(0, 0, w, 5).CenterIn(dst.Bounds())

	dst.FillRect(box, ' ', platformcore.Style{})
	dst.DrawBox(box)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			if c := dst.GetCell(x, y); c.Rune != ' ' {
				dst.Paint(x, y, overlayBorder)
			}
		}
	}
	drawCentered(dst, box, box.Y+1, line1)
	drawCentered(dst, box, box.Y+3, line2)
}

func drawCentered(dst *platformcore.Screen, box platformcore.Rect, y int, text string) {
	x := box.X + (box.W-utf8.RuneCountInString(text))/2
	dst.DrawTextStyled(x, y, text, overlayBorder)
}

type glyphSet struct {
	empty, dark, light, hint rune
}

func (g *Game) glyphs() glyphSet {
	gl := g.cfg.Display.Glyphs
	return glyphSet{
		empty: config.Glyph(gl.Empty, '.'),
		dark:  config.Glyph(gl.Dark, 'D'),
		light: config.Glyph(gl.Light, 'L'),
		hint:  config.Glyph(gl.Hint, '?'),
	}
}
