package domain

import (
	"fmt"
	"math"
	"strings"
)

// Risk flag tags attached to legs by the meta-model scorer.
const (
	RiskHighOdd       = "HIGH_ODD"
	RiskLowConfidence = "LOW_CONFIDENCE"
)

// LegMeta carries the annotations later pipeline stages attach to a leg.
type LegMeta struct {
	// Family is the coarse market category used for diversification caps,
	// e.g. "1X2", "GOALS", "BTTS".
	Family string
	// LeagueWeight is the multiplier attached by the rule engine; top
	// leagues get a boost, everything else stays at 1.
	LeagueWeight float64
	// StatsAvailable gates the leg through the rule engine's stats filter.
	StatsAvailable bool
}

// Leg is one candidate bet on one market of one fixture. Legs are created
// once by a builder and only annotated afterwards; they are never
// re-derived from the fixture.
type Leg struct {
	FixtureID  int64
	LeagueID   int64
	HomeTeam   string
	AwayTeam   string
	Market     string
	Odd        float64
	Confidence int
	RiskFlags  []string
	Reason     string
	Builder    string
	Meta       LegMeta
}

// HasRiskFlag reports whether the leg carries the given risk tag.
func (l Leg) HasRiskFlag(flag string) bool {
	for _, f := range l.RiskFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// Match renders the leg's pairing as "Home vs Away".
func (l Leg) Match() string {
	return l.HomeTeam + " vs " + l.AwayTeam
}

// NewLeg constructs a Leg from a fixture, a market code, and a decimal odd.
// It enforces the construction invariant: the fixture must carry all four
// identifying fields and the odd must be a finite number greater than zero,
// otherwise no Leg comes into existence. Family falls back to the letters
// of the market code when empty.
func NewLeg(f Fixture, market string, odd float64, family string) (Leg, error) {
	if f.FixtureID == 0 || f.LeagueID == 0 || f.HomeTeam == "" || f.AwayTeam == "" {
		return Leg{}, fmt.Errorf("leg %s: %w", market, ErrIncompleteFixture)
	}
	if math.IsNaN(odd) || math.IsInf(odd, 0) || odd <= 0 {
		return Leg{}, fmt.Errorf("leg %s: odd %v: %w", market, odd, ErrInvalidOdd)
	}

	if family == "" {
		family = marketFamily(market)
	}

	return Leg{
		FixtureID: f.FixtureID,
		LeagueID:  f.LeagueID,
		HomeTeam:  f.HomeTeam,
		AwayTeam:  f.AwayTeam,
		Market:    market,
		Odd:       odd,
		Meta: LegMeta{
			Family:         family,
			LeagueWeight:   1,
			StatsAvailable: !f.StatsMissing,
		},
	}, nil
}

// marketFamily derives a default family tag from a market code: the first
// three letters, uppercased, with digits and separators stripped.
func marketFamily(market string) string {
	var b strings.Builder
	for _, r := range market {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	return strings.ToUpper(b.String())
}
