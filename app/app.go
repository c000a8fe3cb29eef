// Package app runs the terminal invoice browser: a virtualized table over
// the invoice list, a detail pane for the selection, and infinite loading
// driven by the scroll window.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ledgerline/ledgerline/columns"
	"github.com/ledgerline/ledgerline/invoice"
	"github.com/ledgerline/ledgerline/scroll"
	"github.com/ledgerline/ledgerline/tablestate"
	"github.com/ledgerline/ledgerline/tui"
	"github.com/ledgerline/ledgerline/widgets"
)

// Terminal is the screen surface plus the event feed. *tui.Screen satisfies
// it; tests substitute a scripted fake over a tui.SimSurface.
type Terminal interface {
	tui.Surface
	Clear()
	Show()
	PollEvent() tui.Event
	Interrupt()
	Fini()
}

// wheelStep is how many rows one wheel notch scrolls.
const wheelStep = 3

// Options configures an App.
type Options struct {
	PageSize int
	Overscan int
	Debounce time.Duration
	UserID   string
}

// App owns the UI state and the event loop.
type App struct {
	term     Terminal
	service  *invoice.Service
	provider *columns.Provider
	store    tablestate.Store
	opts     Options

	ctrl     *scroll.Controller
	sentinel *scroll.Sentinel
	table    *widgets.InvoiceTable
	detail   *widgets.DetailPane

	params   invoice.ListParams
	rows     []invoice.Invoice
	total    int
	hasMore  bool
	nextPage int
	loadReq  bool

	quit bool
}

// New wires an app. The store may be nil; UI state then starts from its
// zero value and is not persisted.
func New(term Terminal, service *invoice.Service, provider *columns.Provider, store tablestate.Store, opts Options) *App {
	if opts.PageSize <= 0 {
		opts.PageSize = tablestate.DefaultPageSize
	}
	if opts.Overscan <= 0 {
		opts.Overscan = scroll.DefaultOverscan
	}
	a := &App{
		term:     term,
		service:  service,
		provider: provider,
		store:    store,
		opts:     opts,
		detail:   widgets.NewDetailPane(),
	}
	ctrlOpts := []scroll.Option{}
	if opts.Debounce > 0 {
		ctrlOpts = append(ctrlOpts, scroll.WithDebounce(opts.Debounce))
	}
	a.ctrl = scroll.NewController(scroll.Config{Overscan: opts.Overscan}, ctrlOpts...)
	a.sentinel = scroll.NewSentinel(
		func() bool { return a.hasMore },
		func() bool { return service.Loading().Get() },
		func() { a.loadReq = true },
	)
	return a
}

// Run loads the initial data and processes events until quit.
func (a *App) Run(ctx context.Context) error {
	defer a.ctrl.Close()

	cols := a.provider.Columns(ctx, "invoices")
	a.table = widgets.NewInvoiceTable(cols, a.ctrl)
	a.applyStoredState()

	// Redraw once the scrolling flag settles so formatting upgrades from
	// the cheap scroll-time forms.
	unsub := a.ctrl.Scrolling().Subscribe(func() {
		if !a.ctrl.Scrolling().Get() {
			a.term.Interrupt()
		}
	})
	defer unsub()

	a.params = invoice.ListParams{PageSize: a.opts.PageSize, Page: 1}
	if err := a.loadFirstPage(ctx); err != nil {
		return err
	}
	a.render()

	for !a.quit {
		ev := a.term.PollEvent()
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		a.handle(ctx, ev)
		a.render()
		a.observeAndLoad(ctx)
	}
	return nil
}

func (a *App) handle(ctx context.Context, ev tui.Event) {
	switch ev := ev.(type) {
	case tui.KeyEvent:
		a.handleKey(ctx, ev)
	case tui.WheelEvent:
		a.ctrl.SetOffset(a.ctrl.Offset().Get() + ev.Delta*wheelStep)
	case tui.ResizeEvent:
		// Render picks up the new size.
	}
}

func (a *App) handleKey(ctx context.Context, ev tui.KeyEvent) {
	switch ev.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyUp:
		a.table.MoveSelection(-1)
		return
	case tcell.KeyDown:
		a.table.MoveSelection(1)
		return
	case tcell.KeyPgUp:
		a.table.MoveSelection(-a.viewportRows())
		return
	case tcell.KeyPgDn:
		a.table.MoveSelection(a.viewportRows())
		return
	case tcell.KeyHome:
		a.ctrl.ScrollToTop(scroll.Instant)
		a.table.MoveSelection(-len(a.rows))
		return
	case tcell.KeyEnd:
		a.ctrl.ScrollToBottom(scroll.Instant)
		a.table.MoveSelection(len(a.rows))
		return
	}
	switch ev.Rune {
	case 'q':
		a.quit = true
	case 'j':
		a.table.MoveSelection(1)
	case 'k':
		a.table.MoveSelection(-1)
	case 'g':
		a.ctrl.ScrollToTop(scroll.Instant)
		a.table.MoveSelection(-len(a.rows))
	case 'G':
		a.ctrl.ScrollToBottom(scroll.Instant)
		a.table.MoveSelection(len(a.rows))
	case 'r':
		a.refresh(ctx)
	}
}

// refresh drops cached pages and reloads from the first page.
func (a *App) refresh(ctx context.Context) {
	a.service.Cache().InvalidatePrefix(invoice.ListPrefix())
	a.sentinel.Reset()
	a.params.Page = 1
	if err := a.loadFirstPage(ctx); err != nil {
		slog.Error("refresh failed", "error", err)
	}
}

func (a *App) loadFirstPage(ctx context.Context) error {
	page, err := a.service.List(ctx, a.params)
	if err != nil {
		return err
	}
	a.rows = page.Items
	a.total = page.Total
	a.hasMore = page.HasMore
	a.nextPage = a.params.Page + 1
	a.table.SetRows(a.rows)
	a.syncDetail()
	return nil
}

// observeAndLoad feeds the sentinel the current window and serves at most
// one queued load request.
func (a *App) observeAndLoad(ctx context.Context) {
	a.sentinel.ObserveWindow(a.ctrl.Window(), len(a.rows))
	if !a.loadReq {
		return
	}
	a.loadReq = false

	params := a.params
	params.Page = a.nextPage
	page, err := a.service.List(ctx, params)
	if err != nil {
		slog.Error("load next page failed", "page", params.Page, "error", err)
		return
	}
	a.rows = append(a.rows, page.Items...)
	a.total = page.Total
	a.hasMore = page.HasMore
	a.nextPage = params.Page + 1
	a.table.SetRows(a.rows)
	a.syncDetail()
	a.render()
}

func (a *App) syncDetail() {
	if inv, ok := a.table.Selected(); ok {
		a.detail.SetInvoice(inv)
	} else {
		a.detail.Clear()
	}
}

func (a *App) render() {
	a.syncDetail()
	a.term.Clear()
	width, height := a.term.Size()
	if width <= 0 || height <= 0 {
		return
	}
	detailWidth := width / 3
	if detailWidth < 24 {
		detailWidth = 0
	}
	tableWidth := width - detailWidth
	a.table.Render(a.term, tui.Rect{X: 0, Y: 0, Width: tableWidth, Height: height})
	if detailWidth > 0 {
		a.detail.Render(a.term, tui.Rect{X: tableWidth, Y: 0, Width: detailWidth, Height: height})
	}
	a.term.Show()
}

func (a *App) viewportRows() int {
	rows := a.ctrl.Config().ViewportHeight
	if rows <= 0 {
		rows = 1
	}
	return rows
}

func (a *App) applyStoredState() {
	if a.store == nil {
		return
	}
	st, ok, err := a.store.Load(tablestate.Scope{Table: "invoices", User: a.opts.UserID})
	if err != nil {
		slog.Warn("stored table state unavailable", "error", err)
		return
	}
	if !ok {
		return
	}
	st = st.Normalize()
	a.table.SetUIState(st)
	if st.PageSize > 0 {
		a.opts.PageSize = st.PageSize
	}
}
