package builder

import (
	"math"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// UnderSafe derives an implied under-2.5 odd from the quoted over-2.5 odd.
// The implied odd is floored at 1.01.
type UnderSafe struct{}

func (UnderSafe) Name() string { return "under_safe" }

func (UnderSafe) Build(f domain.Fixture) []domain.Leg {
	if f.Odds == nil || f.Odds.Over25 == nil || f.Odds.Over25.Home <= 0 {
		return nil
	}
	implied := math.Max(1.01, 1.8-f.Odds.Over25.Home)
	leg, err := domain.NewLeg(f, "U25_SAFE", implied, "GOALS")
	if err != nil {
		return nil
	}
	return []domain.Leg{leg}
}
