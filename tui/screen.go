package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen is a tcell-backed Surface plus the event feed for the app loop.
type Screen struct {
	tc tcell.Screen
}

// NewScreen initializes the terminal.
func NewScreen() (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := tc.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	tc.EnableMouse()
	tc.HideCursor()
	return &Screen{tc: tc}, nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	if s == nil || s.tc == nil {
		return
	}
	s.tc.Fini()
}

// Size returns the terminal dimensions.
func (s *Screen) Size() (int, int) {
	if s == nil || s.tc == nil {
		return 0, 0
	}
	return s.tc.Size()
}

// SetCell draws a rune at a cell.
func (s *Screen) SetCell(x, y int, r rune, style Style) {
	if s == nil || s.tc == nil {
		return
	}
	s.tc.SetContent(x, y, r, nil, toTcell(style))
}

// Clear erases the screen buffer.
func (s *Screen) Clear() {
	if s == nil || s.tc == nil {
		return
	}
	s.tc.Clear()
}

// Show flushes pending draws to the terminal.
func (s *Screen) Show() {
	if s == nil || s.tc == nil {
		return
	}
	s.tc.Show()
}

// PollEvent blocks for the next terminal event, translated into an Event.
// It returns nil for events the app does not consume.
func (s *Screen) PollEvent() Event {
	if s == nil || s.tc == nil {
		return nil
	}
	switch ev := s.tc.PollEvent().(type) {
	case *tcell.EventKey:
		return KeyEvent{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
	case *tcell.EventResize:
		w, h := ev.Size()
		return ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			return WheelEvent{Delta: -1}
		case ev.Buttons()&tcell.WheelDown != 0:
			return WheelEvent{Delta: 1}
		}
	}
	return nil
}

// Interrupt wakes PollEvent, used to stop the loop.
func (s *Screen) Interrupt() {
	if s == nil || s.tc == nil {
		return
	}
	s.tc.PostEvent(tcell.NewEventInterrupt(nil))
}

func toTcell(style Style) tcell.Style {
	st := tcell.StyleDefault
	if style.fg != ColorDefault {
		st = st.Foreground(tcell.NewHexColor(int32(style.fg)))
	}
	if style.bg != ColorDefault {
		st = st.Background(tcell.NewHexColor(int32(style.bg)))
	}
	return st.
		Bold(style.bold).
		Reverse(style.reverse).
		Dim(style.dim).
		Underline(style.underline)
}

// Event is a terminal event the app loop consumes.
type Event interface {
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports new terminal dimensions.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// WheelEvent reports mouse wheel movement in rows.
type WheelEvent struct {
	Delta int
}

func (WheelEvent) isEvent() {}
