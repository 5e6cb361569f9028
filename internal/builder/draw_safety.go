package builder

import "github.com/mvlatkovic/betmixer/internal/domain"

// DrawSafety backs the draw on the 1X2 market.
type DrawSafety struct{}

func (DrawSafety) Name() string { return "draw_safety" }

func (DrawSafety) Build(f domain.Fixture) []domain.Leg {
	if f.Odds == nil || f.Odds.MatchWinner == nil {
		return nil
	}
	leg, err := domain.NewLeg(f, "DRAW_SFTY", f.Odds.MatchWinner.Draw, "1X2")
	if err != nil {
		return nil
	}
	return []domain.Leg{leg}
}
