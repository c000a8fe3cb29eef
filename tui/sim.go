package tui

import (
	"strings"
	"sync"
)

// SimSurface is an in-memory Surface that captures what was drawn. Tests
// render widgets onto it and assert on the text content.
type SimSurface struct {
	mu     sync.Mutex
	width  int
	height int
	runes  []rune
	styles []Style
}

// NewSimSurface creates a blank simulated surface.
func NewSimSurface(width, height int) *SimSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := &SimSurface{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		styles: make([]Style, width*height),
	}
	for i := range s.runes {
		s.runes[i] = ' '
	}
	return s
}

// Size returns the surface dimensions.
func (s *SimSurface) Size() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.width, s.height
}

// SetCell stores a rune and style; out-of-bounds writes are dropped.
func (s *SimSurface) SetCell(x, y int, r rune, style Style) {
	if s == nil || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.mu.Lock()
	s.runes[y*s.width+x] = r
	s.styles[y*s.width+x] = style
	s.mu.Unlock()
}

// StyleAt returns the style stored at a cell.
func (s *SimSurface) StyleAt(x, y int) Style {
	if s == nil || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Style{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.styles[y*s.width+x]
}

// Capture renders the surface content as lines of text.
func (s *SimSurface) Capture() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(s.runes[y*s.width:(y+1)*s.width]), " "))
	}
	return b.String()
}

// ContainsText reports whether the text appears anywhere on the surface.
func (s *SimSurface) ContainsText(text string) bool {
	return strings.Contains(s.Capture(), text)
}

// Line returns the trimmed content of one row.
func (s *SimSurface) Line(y int) string {
	if s == nil || y < 0 || y >= s.height {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimRight(string(s.runes[y*s.width:(y+1)*s.width]), " ")
}
