package widgets

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/ledgerline/ledgerline/invoice"
	"github.com/ledgerline/ledgerline/tui"
)

// DetailPane shows the selected invoice: its fields as highlighted JSON,
// followed by the notes with markdown syntax stripped.
type DetailPane struct {
	inv   invoice.Invoice
	empty bool

	style      tui.Style
	titleStyle tui.Style
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane() *DetailPane {
	return &DetailPane{
		empty:      true,
		style:      tui.DefaultStyle(),
		titleStyle: tui.DefaultStyle().Bold(true),
	}
}

// SetInvoice sets the invoice to display.
func (p *DetailPane) SetInvoice(inv invoice.Invoice) {
	if p == nil {
		return
	}
	p.inv = inv
	p.empty = false
}

// Clear empties the pane.
func (p *DetailPane) Clear() {
	if p == nil {
		return
	}
	p.inv = invoice.Invoice{}
	p.empty = true
}

// Render draws the pane into bounds.
func (p *DetailPane) Render(s tui.Surface, bounds tui.Rect) {
	if p == nil || s == nil || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	tui.Fill(s, bounds, ' ', p.style)
	if p.empty {
		tui.Text(s, bounds.X, bounds.Y, "no invoice selected", p.style.Dim(true))
		return
	}

	y := bounds.Y
	tui.TextPadded(s, bounds.X, y, bounds.Width, p.inv.Number+" · "+p.inv.Customer, p.titleStyle)
	y++

	for _, line := range p.jsonLines() {
		if y >= bounds.Y+bounds.Height {
			return
		}
		x := bounds.X
		for _, span := range line {
			if x >= bounds.X+bounds.Width {
				break
			}
			text := tui.Truncate(span.text, bounds.X+bounds.Width-x)
			x += tui.Text(s, x, y, text, span.style)
		}
		y++
	}

	notes := NoteLines(p.inv.Notes)
	if len(notes) == 0 {
		return
	}
	y++
	if y >= bounds.Y+bounds.Height {
		return
	}
	tui.TextPadded(s, bounds.X, y, bounds.Width, "Notes", p.titleStyle)
	y++
	for _, line := range notes {
		if y >= bounds.Y+bounds.Height {
			return
		}
		tui.TextPadded(s, bounds.X, y, bounds.Width, line, p.style)
		y++
	}
}

type span struct {
	text  string
	style tui.Style
}

// jsonLines marshals the invoice and tokenizes it so each line carries
// per-token styles. Highlighting failures fall back to plain lines.
func (p *DetailPane) jsonLines() [][]span {
	view := p.inv
	view.Notes = ""
	raw, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil
	}
	source := string(raw)

	lexer := lexers.Get("json")
	if lexer == nil {
		return plainLines(source, p.style)
	}
	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainLines(source, p.style)
	}

	var lines [][]span
	var current []span
	for _, tok := range it.Tokens() {
		style := p.tokenStyle(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, span{text: part, style: style})
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func plainLines(source string, style tui.Style) [][]span {
	var lines [][]span
	for _, line := range strings.Split(source, "\n") {
		lines = append(lines, []span{{text: line, style: style}})
	}
	return lines
}

func (p *DetailPane) tokenStyle(tt chroma.TokenType) tui.Style {
	switch {
	case tt.InCategory(chroma.Name):
		return p.style.Foreground(tui.RGB(0x7a, 0xa2, 0xf7))
	case tt.InCategory(chroma.LiteralString):
		return p.style.Foreground(tui.RGB(0x9e, 0xce, 0x6a))
	case tt.InCategory(chroma.LiteralNumber):
		return p.style.Foreground(tui.RGB(0xff, 0x9e, 0x64))
	case tt.InCategory(chroma.Keyword):
		return p.style.Foreground(tui.RGB(0xbb, 0x9a, 0xf7))
	case tt.InCategory(chroma.Punctuation):
		return p.style.Dim(true)
	default:
		return p.style
	}
}

// NoteLines flattens markdown notes into plain text lines: one line per
// block-level node, inline markup stripped.
func NoteLines(notes string) []string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil
	}
	src := []byte(notes)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var lines []string
	var b strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				lines = append(lines, b.String())
				b.Reset()
			}
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return []string{notes}
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}
