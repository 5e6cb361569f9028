package builder

import "github.com/mvlatkovic/betmixer/internal/domain"

// BTTSStrict backs "no" on both-teams-to-score, falling back to the "yes"
// odd when the bookmaker did not price the no side.
type BTTSStrict struct{}

func (BTTSStrict) Name() string { return "btts_strict" }

func (BTTSStrict) Build(f domain.Fixture) []domain.Leg {
	if f.Odds == nil || f.Odds.BTTS == nil {
		return nil
	}
	odd := f.Odds.BTTS.No
	if odd <= 0 {
		odd = f.Odds.BTTS.Yes
	}
	leg, err := domain.NewLeg(f, "BTTS_STRICT", odd, "BTTS")
	if err != nil {
		return nil
	}
	return []domain.Leg{leg}
}
