// Package tui provides the minimal terminal plumbing the widgets draw on:
// a cell surface abstraction, text helpers, a tcell-backed screen, and an
// in-memory surface for tests.
package tui

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Color is a 24-bit RGB color, or ColorDefault for the terminal default.
type Color int32

// ColorDefault keeps the terminal's own foreground or background.
const ColorDefault Color = -1

// RGB packs a color from components.
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// Style describes how a cell is drawn.
type Style struct {
	fg        Color
	bg        Color
	bold      bool
	reverse   bool
	dim       bool
	underline bool
}

// DefaultStyle returns a style using terminal default colors.
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// Bold toggles bold rendering.
func (s Style) Bold(v bool) Style {
	s.bold = v
	return s
}

// Reverse toggles reverse video.
func (s Style) Reverse(v bool) Style {
	s.reverse = v
	return s
}

// Dim toggles dim rendering.
func (s Style) Dim(v bool) Style {
	s.dim = v
	return s
}

// Underline toggles underlining.
func (s Style) Underline(v bool) Style {
	s.underline = v
	return s
}

// Surface is a drawable grid of cells.
type Surface interface {
	Size() (width, height int)
	SetCell(x, y int, r rune, style Style)
}

// Fill paints a rectangle with a rune.
func Fill(s Surface, bounds Rect, r rune, style Style) {
	if s == nil {
		return
	}
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			s.SetCell(x, y, r, style)
		}
	}
}
