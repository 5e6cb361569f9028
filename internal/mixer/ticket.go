package mixer

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// TicketIDs issues run-scoped ticket identifiers of the form
// TKT-<date>-<run>-<seq>. The run token comes from a UUID and the sequence
// from a monotonic counter, so IDs cannot collide within a run.
type TicketIDs struct {
	date string
	run  string
	seq  atomic.Int64
}

// NewTicketIDs creates a generator scoped to the given run time.
func NewTicketIDs(now time.Time) *TicketIDs {
	return &TicketIDs{
		date: now.UTC().Format("2006-01-02"),
		run:  uuid.NewString()[:8],
	}
}

// Next returns the next identifier in the run.
func (t *TicketIDs) Next() string {
	return fmt.Sprintf("TKT-%s-%s-%03d", t.date, t.run, t.seq.Add(1))
}

// scoreTicket aggregates one leg tuple into a ticket. TotalOdd is the
// product of the leg odds rounded to two decimals; ConfidenceAvg the
// rounded mean of leg confidences. Both are derived here and nowhere else.
func scoreTicket(ids *TicketIDs, now time.Time, legs []domain.Leg) domain.Ticket {
	totalOdd := 1.0
	confidenceSum := 0
	for _, leg := range legs {
		totalOdd *= leg.Odd
		confidenceSum += leg.Confidence
	}

	return domain.Ticket{
		ID:            ids.Next(),
		CreatedAt:     now,
		Legs:          legs,
		TotalOdd:      round2(totalOdd),
		ConfidenceAvg: int(math.Round(float64(confidenceSum) / float64(len(legs)))),
		Summary:       fmt.Sprintf("Auto-mixed ticket with %d legs", len(legs)),
		LegCount:      len(legs),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
