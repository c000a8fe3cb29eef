package widgets

import (
	"testing"

	"github.com/ledgerline/ledgerline/invoice"
	"github.com/ledgerline/ledgerline/tui"
)

func TestDetailPaneEmpty(t *testing.T) {
	p := NewDetailPane()
	s := tui.NewSimSurface(40, 10)
	p.Render(s, tui.Rect{Width: 40, Height: 10})
	if !s.ContainsText("no invoice selected") {
		t.Fatalf("empty pane placeholder missing:\n%s", s.Capture())
	}
}

func TestDetailPaneRendersInvoice(t *testing.T) {
	p := NewDetailPane()
	p.SetInvoice(invoice.Invoice{
		ID:          invoice.NewID(),
		Number:      "INV-0042",
		Customer:    "Acme Corp",
		Status:      invoice.StatusPaid,
		AmountCents: 995,
		Currency:    "EUR",
	})
	s := tui.NewSimSurface(60, 24)
	p.Render(s, tui.Rect{Width: 60, Height: 24})

	if !s.ContainsText("INV-0042 · Acme Corp") {
		t.Fatalf("title line missing:\n%s", s.Capture())
	}
	if !s.ContainsText(`"number"`) {
		t.Fatalf("json body missing:\n%s", s.Capture())
	}
	if !s.ContainsText("INV-0042") || !s.ContainsText("paid") {
		t.Fatalf("field values missing:\n%s", s.Capture())
	}
}

func TestDetailPaneRendersNotes(t *testing.T) {
	p := NewDetailPane()
	p.SetInvoice(invoice.Invoice{
		Number:   "INV-1",
		Customer: "Acme",
		Notes:    "Payment due on receipt.",
	})
	s := tui.NewSimSurface(60, 30)
	p.Render(s, tui.Rect{Width: 60, Height: 30})

	if !s.ContainsText("Notes") {
		t.Fatalf("notes heading missing:\n%s", s.Capture())
	}
	if !s.ContainsText("Payment due on receipt.") {
		t.Fatalf("note text missing:\n%s", s.Capture())
	}
}

func TestDetailPaneClear(t *testing.T) {
	p := NewDetailPane()
	p.SetInvoice(invoice.Invoice{Number: "INV-1"})
	p.Clear()
	s := tui.NewSimSurface(40, 10)
	p.Render(s, tui.Rect{Width: 40, Height: 10})
	if !s.ContainsText("no invoice selected") {
		t.Fatal("pane should be empty after Clear")
	}
}

func TestNoteLinesStripMarkdown(t *testing.T) {
	lines := NoteLines("# Terms\n\nPay within **30 days** of issue.")
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want 2 entries", lines)
	}
	if lines[0] != "Terms" {
		t.Fatalf("heading = %q, want %q", lines[0], "Terms")
	}
	if lines[1] != "Pay within 30 days of issue." {
		t.Fatalf("body = %q, markup not stripped", lines[1])
	}
}

func TestNoteLinesJoinSoftBreaks(t *testing.T) {
	lines := NoteLines("first line\nsecond line")
	if len(lines) != 1 {
		t.Fatalf("lines = %v, want a single paragraph", lines)
	}
	if lines[0] != "first line second line" {
		t.Fatalf("paragraph = %q, soft break not joined", lines[0])
	}
}

func TestNoteLinesEmpty(t *testing.T) {
	if lines := NoteLines("   \n  "); lines != nil {
		t.Fatalf("lines = %v, want nil for blank notes", lines)
	}
}
