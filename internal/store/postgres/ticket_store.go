package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// TicketStore implements domain.TicketStore using PostgreSQL. Legs are
// stored as a JSONB document per ticket; they are only ever read back as
// a whole.
type TicketStore struct {
	pool *pgxpool.Pool
}

// NewTicketStore creates a TicketStore backed by the given connection pool.
func NewTicketStore(pool *pgxpool.Pool) *TicketStore {
	return &TicketStore{pool: pool}
}

// InsertBatch stores every ticket of one run under the given date in a
// single batch. Re-running a date upserts by ticket ID.
func (s *TicketStore) InsertBatch(ctx context.Context, date string, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	const query = `
		INSERT INTO tickets (
			id, ticket_date, created_at, total_odd,
			confidence_avg, leg_count, summary, legs
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			total_odd      = EXCLUDED.total_odd,
			confidence_avg = EXCLUDED.confidence_avg,
			leg_count      = EXCLUDED.leg_count,
			summary        = EXCLUDED.summary,
			legs           = EXCLUDED.legs`

	batch := &pgx.Batch{}
	for _, t := range tickets {
		legs, err := json.Marshal(t.Legs)
		if err != nil {
			return fmt.Errorf("postgres: marshal legs for ticket %s: %w", t.ID, err)
		}
		batch.Queue(query,
			t.ID, date, t.CreatedAt, t.TotalOdd,
			t.ConfidenceAvg, t.LegCount, t.Summary, legs,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range tickets {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("postgres: insert ticket batch item %d: %w", i, err)
		}
	}
	return nil
}

// ListByDate returns the tickets generated for the given date, most
// confident first.
func (s *TicketStore) ListByDate(ctx context.Context, date string) ([]domain.Ticket, error) {
	const query = `
		SELECT id, created_at, total_odd, confidence_avg, leg_count, summary, legs
		FROM tickets
		WHERE ticket_date = $1
		ORDER BY confidence_avg DESC, id`

	rows, err := s.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("postgres: list tickets for %s: %w", date, err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		var legs []byte
		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.TotalOdd, &t.ConfidenceAvg, &t.LegCount, &t.Summary, &legs); err != nil {
			return nil, fmt.Errorf("postgres: scan ticket: %w", err)
		}
		if err := json.Unmarshal(legs, &t.Legs); err != nil {
			return nil, fmt.Errorf("postgres: unmarshal legs for ticket %s: %w", t.ID, err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list tickets for %s: %w", date, err)
	}
	return tickets, nil
}

// Compile-time interface check.
var _ domain.TicketStore = (*TicketStore)(nil)
