// Command ledgerline is a terminal invoice browser backed by the invoice
// HTTP API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/app"
	"github.com/ledgerline/ledgerline/columns"
	"github.com/ledgerline/ledgerline/config"
	"github.com/ledgerline/ledgerline/invoice"
	"github.com/ledgerline/ledgerline/query"
	"github.com/ledgerline/ledgerline/tablestate"
	"github.com/ledgerline/ledgerline/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		apiURL     string
		userID     string
	)
	cmd := &cobra.Command{
		Use:          "ledgerline",
		Short:        "Browse invoices in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIBaseURL = apiURL
			}
			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), cfg, userID)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.Path(), "config file path")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "invoice API base URL (overrides config)")
	cmd.Flags().StringVar(&userID, "user", "", "user id scoping persisted table state")
	return cmd
}

func run(ctx context.Context, cfg config.Config, userID string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := invoice.NewClient(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	cache := query.NewCache()
	service := invoice.NewService(client, cache, cfg.CacheTTL())

	provider, err := columns.NewProvider(cfg.APIBaseURL, cache, cfg.CacheTTL())
	if err != nil {
		return err
	}

	store, closeStore, err := openStateStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	screen, err := tui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	// Wake the event loop when the context is cancelled.
	go func() {
		<-ctx.Done()
		screen.Interrupt()
	}()

	a := app.New(screen, service, provider, store, app.Options{
		PageSize: cfg.PageSize,
		Overscan: cfg.Overscan,
		Debounce: cfg.ScrollDebounce(),
		UserID:   userID,
	})
	return a.Run(ctx)
}

func openStateStore(cfg config.Config) (tablestate.Store, func(), error) {
	noop := func() {}
	switch cfg.StateStore {
	case "memory":
		return tablestate.NewMemoryStore(), noop, nil
	case "file", "":
		dir := cfg.StatePath
		if dir == "" {
			dir = config.StateDir()
		}
		store, err := tablestate.NewFileStore(dir)
		return store, noop, err
	case "sqlite":
		path := cfg.StatePath
		if path == "" {
			path = filepath.Join(config.StateDir(), "state.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, noop, fmt.Errorf("create state dir: %w", err)
		}
		store, err := tablestate.OpenSQLStore(path)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown state store %q", cfg.StateStore)
	}
}

// setupLogging routes slog through charm's handler. The terminal owns
// stdout, so logs go to a file or are discarded.
func setupLogging(cfg config.Config) (func(), error) {
	var w io.Writer = io.Discard
	closeLog := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	slog.SetDefault(slog.New(logger))
	return closeLog, nil
}
