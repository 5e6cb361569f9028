package builder

import "github.com/mvlatkovic/betmixer/internal/domain"

// FirstHalfGoals backs an early-goals outcome via the over-1.5 line.
type FirstHalfGoals struct{}

func (FirstHalfGoals) Name() string { return "first_half_goals" }

func (FirstHalfGoals) Build(f domain.Fixture) []domain.Leg {
	if f.Odds == nil || f.Odds.Over15 == nil {
		return nil
	}
	leg, err := domain.NewLeg(f, "O15_HT", f.Odds.Over15.Home, "GOALS")
	if err != nil {
		return nil
	}
	return []domain.Leg{leg}
}
