// Package app provides the top-level application lifecycle for the ticket
// mixer. It wires the ingestion, mixing, judging, persistence, and
// notification collaborators and runs the mode selected in config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mvlatkovic/betmixer/internal/config"
)

// App is the root application object. It owns the configuration, logger,
// and the cleanup functions registered while wiring.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates an App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all dependencies, executes the configured mode once, and
// returns. Scheduling repeat runs is the operator's concern (cron,
// systemd timers).
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting run",
		slog.String("mode", a.cfg.Mode),
		slog.String("log_level", a.cfg.LogLevel),
	)

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	now := a.now()

	switch strings.ToLower(a.cfg.Mode) {
	case "ingest":
		return a.IngestMode(ctx, deps, now)
	case "generate":
		return a.GenerateMode(ctx, deps, now)
	case "evaluate":
		return a.EvaluateMode(ctx, deps, now)
	case "full":
		return a.FullMode(ctx, deps, now)
	default:
		return fmt.Errorf("app: unsupported mode %q", a.cfg.Mode)
	}
}

// now anchors the run in the configured timezone so date boundaries match
// the provider's fixture days.
func (a *App) now() time.Time {
	loc, err := time.LoadLocation(a.cfg.APIFootball.Timezone)
	if err != nil {
		a.logger.Warn("invalid timezone, using UTC",
			slog.String("timezone", a.cfg.APIFootball.Timezone),
		)
		return time.Now().UTC()
	}
	return time.Now().In(loc)
}

// Close tears down all resources in reverse registration order. It is
// safe to call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	a.logger.Info("shutting down")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
