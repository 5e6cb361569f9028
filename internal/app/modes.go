package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
	"github.com/mvlatkovic/betmixer/internal/mixer"
	"github.com/mvlatkovic/betmixer/internal/notify"
	"github.com/mvlatkovic/betmixer/internal/scorer"
)

const runLockTTL = 10 * time.Minute

// ticketArtifact is the per-run output document: the raw ranked tickets
// plus the telegram-rendered variant carrying the presentation fields.
type ticketArtifact struct {
	Date     string             `json:"date"`
	Tickets  []domain.Ticket    `json:"tickets"`
	Telegram []mixer.TicketView `json:"telegram"`
	Message  string             `json:"message"`
}

// IngestMode fetches and normalizes the fixture window and writes it as a
// local artifact. It is the dry-run entry point for inspecting what the
// generator would see.
func (a *App) IngestMode(ctx context.Context, deps *Dependencies, now time.Time) error {
	fixtures, _, err := deps.Ingest.FixturesForRun(ctx, now)
	if err != nil {
		return fmt.Errorf("app: ingest: %w", err)
	}
	return a.writeArtifact("fixtures.json", fixtures)
}

// GenerateMode runs the full candidate pipeline for today: ingestion, leg
// building, rule filtering, scoring, optional LLM vetting, and ranking.
// The ranked tickets are written as artifacts, persisted when a store is
// configured, and broadcast to the notification channels.
func (a *App) GenerateMode(ctx context.Context, deps *Dependencies, now time.Time) error {
	date := now.Format("2006-01-02")

	if deps.RunLock != nil {
		release, err := deps.RunLock.Acquire(ctx, date, runLockTTL)
		if err != nil {
			if errors.Is(err, domain.ErrLockHeld) {
				a.logger.WarnContext(ctx, "another run holds the lock, skipping",
					slog.String("date", date),
				)
				return nil
			}
			return fmt.Errorf("app: acquire run lock: %w", err)
		}
		defer release()
	}

	fixtures, signals, err := deps.Ingest.FixturesForRun(ctx, now)
	if err != nil {
		return fmt.Errorf("app: ingest: %w", err)
	}

	legs := deps.Builders.Run(fixtures)
	filtered := deps.Mixer.Filter(legs)

	var provider domain.SignalProvider
	if signals != nil {
		provider = scorer.FixtureSignals(signals)
	}
	scored := deps.Mixer.Score(filtered, provider)

	if deps.Judge != nil {
		scored = deps.Judge.JudgeLegs(ctx, scored)
	}

	tickets := deps.Mixer.Rank(now, scored)
	views := mixer.Present(tickets, deps.Mixer.LegsPerTicket())

	a.logger.InfoContext(ctx, "generation completed",
		slog.String("date", date),
		slog.Int("fixtures", len(fixtures)),
		slog.Int("candidate_legs", len(legs)),
		slog.Int("scored_legs", len(scored)),
		slog.Int("tickets", len(tickets)),
	)

	title, message := notify.FormatTickets(date, views)
	doc := ticketArtifact{Date: date, Tickets: tickets, Telegram: views, Message: message}
	if err := a.writeArtifact("tickets.json", doc); err != nil {
		return err
	}

	if deps.Tickets != nil {
		if err := deps.Tickets.InsertBatch(ctx, date, tickets); err != nil {
			return fmt.Errorf("app: persist tickets: %w", err)
		}
	}

	if err := deps.Notifier.Broadcast(ctx, title, message); err != nil {
		a.logger.WarnContext(ctx, "notification delivery incomplete",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// EvaluateMode settles the previous day's tickets against final scores
// and upserts the evaluation record. Yesterday is evaluated because
// today's fixtures are generally still unplayed when the evaluator runs.
func (a *App) EvaluateMode(ctx context.Context, deps *Dependencies, now time.Time) error {
	if deps.Tickets == nil || deps.Evaluations == nil {
		return fmt.Errorf("app: evaluate mode requires postgres to be enabled")
	}

	date := now.AddDate(0, 0, -1).Format("2006-01-02")

	tickets, err := deps.Tickets.ListByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("app: list tickets for %s: %w", date, err)
	}
	if len(tickets) == 0 {
		a.logger.InfoContext(ctx, "nothing to evaluate", slog.String("date", date))
		return nil
	}

	scores, err := deps.Client.ResultsByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("app: results for %s: %w", date, err)
	}

	prevStreak := 0
	prev, err := deps.Evaluations.Latest(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("app: latest evaluation: %w", err)
	}
	if err == nil && prev.Date != date {
		prevStreak = prev.Streak
	}

	ev := deps.Eval.Evaluate(date, now, tickets, scores, prevStreak)

	if err := deps.Evaluations.Upsert(ctx, ev); err != nil {
		return fmt.Errorf("app: persist evaluation: %w", err)
	}
	if err := a.writeArtifact("evaluation.json", ev); err != nil {
		return err
	}

	title, message := notify.FormatEvaluation(ev)
	if err := deps.Notifier.Broadcast(ctx, title, message); err != nil {
		a.logger.WarnContext(ctx, "notification delivery incomplete",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// FullMode settles yesterday's tickets, then generates today's. The order
// keeps the streak current before new tickets go out.
func (a *App) FullMode(ctx context.Context, deps *Dependencies, now time.Time) error {
	if deps.Tickets != nil && deps.Evaluations != nil {
		if err := a.EvaluateMode(ctx, deps, now); err != nil {
			a.logger.WarnContext(ctx, "evaluation failed, continuing with generation",
				slog.String("error", err.Error()),
			)
		}
	}
	return a.GenerateMode(ctx, deps, now)
}

// writeArtifact serializes v as indented JSON into the output directory.
func (a *App) writeArtifact(name string, v any) error {
	if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("app: create output dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("app: marshal artifact %s: %w", name, err)
	}

	path := filepath.Join(a.cfg.Output.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("app: write artifact %s: %w", name, err)
	}
	a.logger.Info("artifact written", slog.String("path", path))
	return nil
}
