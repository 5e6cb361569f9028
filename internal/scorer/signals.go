package scorer

import "github.com/mvlatkovic/betmixer/internal/domain"

// LeagueWeightSignals is the reference placeholder provider: every feature
// is derived from the league weight the rule engine attached, so top-league
// legs receive a uniform nudge and nothing else.
func LeagueWeightSignals(leg domain.Leg) domain.SignalBundle {
	w := leg.Meta.LeagueWeight
	if w == 0 {
		w = 1
	}
	return domain.SignalBundle{
		Form:     w * 10,
		XG:       w * 8,
		Shots:    5,
		Momentum: 6,
		H2H:      4,
	}
}

// FixtureSignals returns a provider backed by per-fixture signal bundles
// collected during ingestion. Fixtures without an entry fall back to zero
// signals, which the scorer treats as neutral.
func FixtureSignals(byFixture map[int64]domain.SignalBundle) domain.SignalProvider {
	return func(leg domain.Leg) domain.SignalBundle {
		return byFixture[leg.FixtureID]
	}
}
