// Package domain defines the core record types of the ticket mixing
// engine: fixtures, candidate legs, tickets, and the contracts of the
// stores and caches that persist them.
package domain

import "time"

// Fixture is one scheduled match with identifying metadata and the odds
// bundle offered for it. Fixtures are produced by the ingestion layer and
// are read-only to the mixing core.
type Fixture struct {
	FixtureID  int64
	LeagueID   int64
	LeagueName string
	Country    string
	Season     int
	KickoffAt  time.Time
	HomeTeamID int64
	HomeTeam   string
	AwayTeamID int64
	AwayTeam   string

	// StatsMissing marks fixtures whose team-statistics lookups failed for
	// both sides during ingestion. Legs built from such fixtures are dropped
	// by the rule engine's stats gate.
	StatsMissing bool

	// Odds is nil when the provider offered no usable market for the fixture.
	Odds *MarketOdds
}

// MarketOdds bundles the up-to-four market sub-records a bookmaker may
// offer for a fixture. A nil sub-record means the market was not offered.
type MarketOdds struct {
	MatchWinner *MatchWinnerOdds
	Over15      *OverUnderOdds
	Over25      *OverUnderOdds
	BTTS        *BTTSOdds
}

// MatchWinnerOdds holds decimal odds for the 1X2 market. A zero value
// means the outcome was not priced.
type MatchWinnerOdds struct {
	Home float64
	Draw float64
	Away float64
}

// OverUnderOdds holds the home-side decimal odd for an over/under line.
type OverUnderOdds struct {
	Home float64
	Line float64
}

// BTTSOdds holds decimal odds for the both-teams-to-score market.
type BTTSOdds struct {
	Yes float64
	No  float64
}

// FinalScore is the settled full-time score of a fixture, used by the
// results evaluator.
type FinalScore struct {
	Home int
	Away int
}

// Total returns the combined number of goals.
func (s FinalScore) Total() int {
	return s.Home + s.Away
}
