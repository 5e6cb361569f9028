package domain

import (
	"context"
	"time"
)

// TicketStore persists generated tickets.
type TicketStore interface {
	// InsertBatch stores every ticket of one run under the given date.
	InsertBatch(ctx context.Context, date string, tickets []Ticket) error
	// ListByDate returns the tickets generated for the given date.
	ListByDate(ctx context.Context, date string) ([]Ticket, error)
}

// EvaluationStore persists daily settlement results.
type EvaluationStore interface {
	// Upsert stores or replaces the evaluation for its date.
	Upsert(ctx context.Context, ev Evaluation) error
	// Latest returns the most recent evaluation, or ErrNotFound.
	Latest(ctx context.Context) (Evaluation, error)
}

// FixtureCache caches the merged fixture batch for one calendar date so
// repeated runs do not re-fetch the provider.
type FixtureCache interface {
	SetDay(ctx context.Context, date string, fixtures []Fixture) error
	// GetDay returns ErrNotFound when the date has not been cached.
	GetDay(ctx context.Context, date string) ([]Fixture, error)
}

// RunLock guards a generation run against concurrent executions for the
// same scope, typically the run date.
type RunLock interface {
	// Acquire returns an idempotent release function, or ErrLockHeld when
	// another holder owns the scope.
	Acquire(ctx context.Context, scope string, ttl time.Duration) (func(), error)
}
