package core

// Color is a terminal color for a screen cell.
// The platform maps it to ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorBoard // felt green used behind the grid
)

// Style pairs a foreground and a background color.
// The zero value renders with terminal defaults.
type Style struct {
	Fg Color
	Bg Color
}

// Fg returns a style with only a foreground color.
func Fg(c Color) Style {
	return Style{Fg: c}
}

// On returns a copy of s drawn over background bg.
func (s Style) On(bg Color) Style {
	s.Bg = bg
	return s
}
