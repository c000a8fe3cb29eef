package tui

import "github.com/mattn/go-runewidth"

// Text draws a string starting at (x, y) and returns the width drawn.
// Wide runes occupy their full display width.
func Text(s Surface, x, y int, text string, style Style) int {
	if s == nil {
		return 0
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// TextPadded draws text left-aligned into a field of the given width,
// truncating with an ellipsis and padding with spaces.
func TextPadded(s Surface, x, y, width int, text string, style Style) {
	if s == nil || width <= 0 {
		return
	}
	text = Truncate(text, width)
	drawn := Text(s, x, y, text, style)
	for col := x + drawn; col < x+width; col++ {
		s.SetCell(col, y, ' ', style)
	}
}

// TextRight draws text right-aligned into a field of the given width.
func TextRight(s Surface, x, y, width int, text string, style Style) {
	if s == nil || width <= 0 {
		return
	}
	text = Truncate(text, width)
	pad := width - runewidth.StringWidth(text)
	for col := x; col < x+pad; col++ {
		s.SetCell(col, y, ' ', style)
	}
	Text(s, x+pad, y, text, style)
}

// Truncate shortens text to fit maxWidth display cells, appending an
// ellipsis when it had to cut.
func Truncate(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	return runewidth.Truncate(text, maxWidth, "…")
}
