// Package widgets renders invoice data onto a tui.Surface. The table only
// draws the rows inside the scroll controller's window, so rendering cost
// stays flat no matter how many invoices are loaded.
package widgets

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ledgerline/ledgerline/columns"
	"github.com/ledgerline/ledgerline/invoice"
	"github.com/ledgerline/ledgerline/scroll"
	"github.com/ledgerline/ledgerline/tablestate"
	"github.com/ledgerline/ledgerline/tui"
)

// InvoiceTable is a virtualized invoice list with a header row and a
// scrollbar. Column layout follows the metadata provider; visibility and
// order follow the persisted table state.
type InvoiceTable struct {
	cols     []columns.Column
	rows     []invoice.Invoice
	ui       tablestate.State
	ctrl     *scroll.Controller
	selected int

	style         tui.Style
	headerStyle   tui.Style
	selectedStyle tui.Style
	overdueStyle  tui.Style
}

// NewInvoiceTable creates a table drawing rows through ctrl's window.
func NewInvoiceTable(cols []columns.Column, ctrl *scroll.Controller) *InvoiceTable {
	return &InvoiceTable{
		cols:          cols,
		ctrl:          ctrl,
		style:         tui.DefaultStyle(),
		headerStyle:   tui.DefaultStyle().Bold(true).Underline(true),
		selectedStyle: tui.DefaultStyle().Reverse(true),
		overdueStyle:  tui.DefaultStyle().Foreground(tui.RGB(0xd0, 0x60, 0x50)),
	}
}

// SetRows replaces the table content.
func (t *InvoiceTable) SetRows(rows []invoice.Invoice) {
	if t == nil {
		return
	}
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

// Rows returns the current table content.
func (t *InvoiceTable) Rows() []invoice.Invoice {
	if t == nil {
		return nil
	}
	return t.rows
}

// SetUIState applies persisted column visibility and order.
func (t *InvoiceTable) SetUIState(ui tablestate.State) {
	if t == nil {
		return
	}
	t.ui = ui
}

// SetColumns replaces the column metadata.
func (t *InvoiceTable) SetColumns(cols []columns.Column) {
	if t == nil {
		return
	}
	t.cols = cols
}

// MoveSelection moves the selected row by delta, clamped to the list, and
// scrolls the selection into view.
func (t *InvoiceTable) MoveSelection(delta int) {
	if t == nil || len(t.rows) == 0 {
		return
	}
	t.selected += delta
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	t.scrollIntoView()
}

// SelectedIndex returns the selected row index.
func (t *InvoiceTable) SelectedIndex() int {
	if t == nil {
		return 0
	}
	return t.selected
}

// Selected returns the selected invoice.
func (t *InvoiceTable) Selected() (invoice.Invoice, bool) {
	if t == nil || t.selected < 0 || t.selected >= len(t.rows) {
		return invoice.Invoice{}, false
	}
	return t.rows[t.selected], true
}

// Render draws the table into bounds.
func (t *InvoiceTable) Render(s tui.Surface, bounds tui.Rect) {
	if t == nil || s == nil || bounds.Width <= 1 || bounds.Height <= 1 {
		return
	}
	tui.Fill(s, bounds, ' ', t.style)

	visible := t.visibleColumns()
	if len(visible) == 0 {
		return
	}
	// Reserve the right edge for the scrollbar.
	widths := flexWidths(visible, bounds.Width-1)

	x := bounds.X
	for i, col := range visible {
		if x >= bounds.X+bounds.Width-1 {
			break
		}
		if col.Align == columns.AlignRight {
			tui.TextRight(s, x, bounds.Y, widths[i], col.Title, t.headerStyle)
		} else {
			tui.TextPadded(s, x, bounds.Y, widths[i], col.Title, t.headerStyle)
		}
		x += widths[i] + 1
	}

	viewport := bounds.Height - 1
	t.ctrl.SetConfig(scroll.Config{
		ItemCount:      len(t.rows),
		ItemHeight:     1,
		ViewportHeight: viewport,
		Overscan:       t.ctrl.Config().Overscan,
	})
	w := t.ctrl.Window()
	offset := t.ctrl.Offset().Get()
	scrolling := t.ctrl.Scrolling().Get()

	for i := w.Start; i < w.End; i++ {
		screenY := bounds.Y + 1 + (i - offset)
		if screenY <= bounds.Y || screenY >= bounds.Y+bounds.Height {
			continue
		}
		t.renderRow(s, bounds, visible, widths, i, screenY, scrolling)
	}

	t.drawScrollbar(s, bounds, w, viewport, offset)
}

func (t *InvoiceTable) renderRow(s tui.Surface, bounds tui.Rect, visible []columns.Column, widths []int, index, screenY int, scrolling bool) {
	row := t.rows[index]
	style := t.style
	switch {
	case index == t.selected:
		style = t.selectedStyle
	case row.Status == invoice.StatusOverdue:
		style = t.overdueStyle
	}
	x := bounds.X
	for i, col := range visible {
		if x >= bounds.X+bounds.Width-1 {
			break
		}
		value := cellValue(row, col.ID, scrolling)
		if col.Align == columns.AlignRight {
			tui.TextRight(s, x, screenY, widths[i], value, style)
		} else {
			tui.TextPadded(s, x, screenY, widths[i], value, style)
		}
		x += widths[i] + 1
	}
}

// cellValue formats one cell. While the scrolling flag is set the cheap
// forms are used so fast scrolls stay fluid.
func cellValue(row invoice.Invoice, columnID string, scrolling bool) string {
	switch columnID {
	case "number":
		return row.Number
	case "customer":
		return row.Customer
	case "status":
		return string(row.Status)
	case "amount":
		if scrolling {
			return strconv.FormatInt(row.AmountCents/100, 10) + " " + row.Currency
		}
		return humanize.CommafWithDigits(float64(row.AmountCents)/100, 2) + " " + row.Currency
	case "issued_at":
		return shortDate(row.IssuedAt)
	case "due_at":
		if scrolling || row.DueAt.IsZero() {
			return shortDate(row.DueAt)
		}
		return humanize.Time(row.DueAt)
	case "notes":
		return row.Notes
	default:
		return ""
	}
}

func shortDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02")
}

func (t *InvoiceTable) scrollIntoView() {
	cfg := t.ctrl.Config()
	if cfg.ViewportHeight <= 0 {
		return
	}
	offset := t.ctrl.Offset().Get()
	if t.selected < offset {
		t.ctrl.SetOffset(t.selected)
		return
	}
	if t.selected >= offset+cfg.ViewportHeight {
		t.ctrl.SetOffset(t.selected - cfg.ViewportHeight + 1)
	}
}

func (t *InvoiceTable) visibleColumns() []columns.Column {
	byID := make(map[string]columns.Column, len(t.cols))
	for _, col := range t.cols {
		byID[col.ID] = col
	}
	ordered := make([]columns.Column, 0, len(t.cols))
	seen := make(map[string]bool, len(t.cols))
	for _, id := range t.ui.ColumnOrder {
		if col, ok := byID[id]; ok && !seen[id] {
			ordered = append(ordered, col)
			seen[id] = true
		}
	}
	for _, col := range t.cols {
		if !seen[col.ID] {
			ordered = append(ordered, col)
		}
	}
	visible := ordered[:0:0]
	for _, col := range ordered {
		if col.Hidden || !t.ui.Visible(col.ID) {
			continue
		}
		visible = append(visible, col)
	}
	return visible
}

// flexWidths distributes the available width: fixed-width columns keep
// their width, zero-width columns split the remainder evenly.
func flexWidths(cols []columns.Column, total int) []int {
	available := total - (len(cols) - 1)
	if available < 0 {
		available = 0
	}
	fixed := 0
	flexCount := 0
	for _, col := range cols {
		if col.Width > 0 {
			fixed += col.Width
		} else {
			flexCount++
		}
	}
	remaining := available - fixed
	if remaining < 0 {
		remaining = 0
	}
	flexWidth := 0
	if flexCount > 0 {
		flexWidth = remaining / flexCount
		if flexWidth <= 0 {
			flexWidth = 1
		}
	}
	widths := make([]int, len(cols))
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
		} else {
			widths[i] = flexWidth
		}
	}
	return widths
}

func (t *InvoiceTable) drawScrollbar(s tui.Surface, bounds tui.Rect, w scroll.Window, viewport, offset int) {
	if w.TotalHeight <= viewport {
		return
	}
	x := bounds.X + bounds.Width - 1
	track := t.style.Dim(true)
	thumb := t.style.Reverse(true)
	for y := 0; y < viewport; y++ {
		s.SetCell(x, bounds.Y+1+y, '│', track)
	}
	thumbSize := viewport * viewport / w.TotalHeight
	if thumbSize < 1 {
		thumbSize = 1
	}
	maxOffset := w.TotalHeight - viewport
	thumbStart := 0
	if maxOffset > 0 {
		thumbStart = offset * (viewport - thumbSize) / maxOffset
	}
	for i := 0; i < thumbSize; i++ {
		y := bounds.Y + 1 + thumbStart + i
		if y > bounds.Y && y < bounds.Y+bounds.Height {
			s.SetCell(x, y, '█', thumb)
		}
	}
}
