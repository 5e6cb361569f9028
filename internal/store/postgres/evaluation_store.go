package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// EvaluationStore implements domain.EvaluationStore using PostgreSQL with
// one row per evaluated date.
type EvaluationStore struct {
	pool *pgxpool.Pool
}

// NewEvaluationStore creates an EvaluationStore backed by the given
// connection pool.
func NewEvaluationStore(pool *pgxpool.Pool) *EvaluationStore {
	return &EvaluationStore{pool: pool}
}

// Upsert stores or replaces the evaluation for its date.
func (s *EvaluationStore) Upsert(ctx context.Context, ev domain.Evaluation) error {
	items, err := json.Marshal(ev.Items)
	if err != nil {
		return fmt.Errorf("postgres: marshal evaluation items for %s: %w", ev.Date, err)
	}

	const query = `
		INSERT INTO evaluations (
			eval_date, generated_at, total_legs, hits, misses,
			hit_rate, tickets_won, tickets_played, streak, items
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (eval_date) DO UPDATE SET
			generated_at   = EXCLUDED.generated_at,
			total_legs     = EXCLUDED.total_legs,
			hits           = EXCLUDED.hits,
			misses         = EXCLUDED.misses,
			hit_rate       = EXCLUDED.hit_rate,
			tickets_won    = EXCLUDED.tickets_won,
			tickets_played = EXCLUDED.tickets_played,
			streak         = EXCLUDED.streak,
			items          = EXCLUDED.items`

	_, err = s.pool.Exec(ctx, query,
		ev.Date, ev.GeneratedAt, ev.TotalLegs, ev.Hits, ev.Misses,
		ev.HitRate, ev.TicketsWon, ev.TicketsPlayed, ev.Streak, items,
	)
	if err != nil {
		return fmt.Errorf("postgres: upsert evaluation %s: %w", ev.Date, err)
	}
	return nil
}

// Latest returns the most recent evaluation, or domain.ErrNotFound when
// nothing has been evaluated yet.
func (s *EvaluationStore) Latest(ctx context.Context) (domain.Evaluation, error) {
	const query = `
		SELECT eval_date::TEXT, generated_at, total_legs, hits, misses,
		       hit_rate, tickets_won, tickets_played, streak, items
		FROM evaluations
		ORDER BY eval_date DESC
		LIMIT 1`

	var ev domain.Evaluation
	var items []byte
	err := s.pool.QueryRow(ctx, query).Scan(
		&ev.Date, &ev.GeneratedAt, &ev.TotalLegs, &ev.Hits, &ev.Misses,
		&ev.HitRate, &ev.TicketsWon, &ev.TicketsPlayed, &ev.Streak, &items,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Evaluation{}, domain.ErrNotFound
		}
		return domain.Evaluation{}, fmt.Errorf("postgres: latest evaluation: %w", err)
	}

	if err := json.Unmarshal(items, &ev.Items); err != nil {
		return domain.Evaluation{}, fmt.Errorf("postgres: unmarshal evaluation items for %s: %w", ev.Date, err)
	}
	return ev, nil
}

// Compile-time interface check.
var _ domain.EvaluationStore = (*EvaluationStore)(nil)
