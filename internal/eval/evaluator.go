// Package eval settles generated tickets against final scores and
// aggregates the day's hit statistics.
package eval

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// Evaluator turns one day's tickets plus the day's final scores into an
// evaluation record.
type Evaluator struct {
	logger *slog.Logger
}

// New builds an Evaluator.
func New(logger *slog.Logger) *Evaluator {
	return &Evaluator{logger: logger.With(slog.String("component", "eval"))}
}

// Evaluate settles every ticket leg for a date. Legs whose fixture has no
// final score yet are left out of the items and keep the ticket from
// counting as won. prevStreak is the streak value of the previous
// evaluation, or 0.
func (e *Evaluator) Evaluate(date string, now time.Time, tickets []domain.Ticket, scores map[int64]domain.FinalScore, prevStreak int) domain.Evaluation {
	ev := domain.Evaluation{
		Date:          date,
		GeneratedAt:   now,
		TicketsPlayed: len(tickets),
	}

	for _, t := range tickets {
		won := len(t.Legs) > 0
		for _, leg := range t.Legs {
			score, ok := scores[leg.FixtureID]
			if !ok {
				won = false
				continue
			}

			hit := legHit(leg.Market, score)
			ev.TotalLegs++
			if hit {
				ev.Hits++
			} else {
				ev.Misses++
				won = false
			}

			ev.Items = append(ev.Items, domain.EvaluationItem{
				TicketID:   t.ID,
				FixtureID:  leg.FixtureID,
				Market:     leg.Market,
				Odd:        leg.Odd,
				Confidence: leg.Confidence,
				Hit:        hit,
				Result:     fmt.Sprintf("%d:%d", score.Home, score.Away),
			})
		}
		if won {
			ev.TicketsWon++
		}
	}

	if ev.TotalLegs > 0 {
		ev.HitRate = math.Round(float64(ev.Hits)/float64(ev.TotalLegs)*100*100) / 100
	}

	// The streak extends only on a clean sweep of a non-empty day.
	if ev.TicketsPlayed > 0 && ev.TicketsWon == ev.TicketsPlayed {
		ev.Streak = prevStreak + 1
	}

	e.logger.Info("evaluation completed",
		slog.String("date", date),
		slog.Int("legs", ev.TotalLegs),
		slog.Int("hits", ev.Hits),
		slog.Int("tickets_won", ev.TicketsWon),
		slog.Int("streak", ev.Streak),
	)
	return ev
}

// legHit settles one market code against a final score. Unknown markets
// count as misses so they surface in the items instead of vanishing.
func legHit(market string, score domain.FinalScore) bool {
	switch market {
	case "DRAW_SFTY":
		return score.Home == score.Away
	case "O15_HT":
		return score.Total() >= 2
	case "U25_SAFE":
		return score.Total() <= 2
	case "BTTS_STRICT":
		return !(score.Home > 0 && score.Away > 0)
	default:
		return false
	}
}
