// Package rules applies the global diversification rule set to candidate
// legs. The engine is a pure function over in-memory slices: its output is
// always a (possibly reordered) subset of its input with league weights
// attached, and it performs no I/O.
package rules

import (
	"sort"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// Config carries every tunable the engine recognises. Zero values fall
// back to the reference defaults so tests can specify only what they vary.
type Config struct {
	// MinOdd and MaxOdd bound the accepted odds window, inclusive.
	MinOdd float64
	MaxOdd float64
	// FamilyCap and LeagueCap limit how many legs may share a market family
	// or a league across the whole run, not per ticket.
	FamilyCap int
	LeagueCap int
	// TopLeagues get TopLeagueWeight instead of 1.
	TopLeagues      []int64
	TopLeagueWeight float64
}

// Defaults returns the reference configuration: odds in [1.08, 1.5], caps
// of two, and a 1.25 boost for the big-five leagues.
func Defaults() Config {
	return Config{
		MinOdd:          1.08,
		MaxOdd:          1.5,
		FamilyCap:       2,
		LeagueCap:       2,
		TopLeagues:      []int64{39, 140, 135, 78, 61},
		TopLeagueWeight: 1.25,
	}
}

// Engine filters and reorders candidate legs.
type Engine struct {
	cfg Config
	top map[int64]bool
}

// NewEngine builds an Engine from cfg, filling unset fields from Defaults.
func NewEngine(cfg Config) *Engine {
	def := Defaults()
	if cfg.MinOdd == 0 {
		cfg.MinOdd = def.MinOdd
	}
	if cfg.MaxOdd == 0 {
		cfg.MaxOdd = def.MaxOdd
	}
	if cfg.FamilyCap == 0 {
		cfg.FamilyCap = def.FamilyCap
	}
	if cfg.LeagueCap == 0 {
		cfg.LeagueCap = def.LeagueCap
	}
	if cfg.TopLeagueWeight == 0 {
		cfg.TopLeagueWeight = def.TopLeagueWeight
	}
	if cfg.TopLeagues == nil {
		cfg.TopLeagues = def.TopLeagues
	}

	top := make(map[int64]bool, len(cfg.TopLeagues))
	for _, id := range cfg.TopLeagues {
		top[id] = true
	}
	return &Engine{cfg: cfg, top: top}
}

// LeagueWeight returns the sort/boost multiplier for a league.
func (e *Engine) LeagueWeight(leagueID int64) float64 {
	if e.top[leagueID] {
		return e.cfg.TopLeagueWeight
	}
	return 1
}

// Apply runs the rule set in its fixed order: odds window, stats gate,
// stable sort by descending league weight, then a single greedy pass that
// caps legs per family and per league. The sort runs first so flagship
// leagues claim the scarce slots.
func (e *Engine) Apply(legs []domain.Leg) []domain.Leg {
	eligible := make([]domain.Leg, 0, len(legs))
	for _, leg := range legs {
		if leg.Odd < e.cfg.MinOdd || leg.Odd > e.cfg.MaxOdd {
			continue
		}
		if !leg.Meta.StatsAvailable {
			continue
		}
		eligible = append(eligible, leg)
	}

	// Stable: equal weights keep their prior relative order.
	sort.SliceStable(eligible, func(i, j int) bool {
		return e.LeagueWeight(eligible[i].LeagueID) > e.LeagueWeight(eligible[j].LeagueID)
	})

	families := make(map[string]int)
	leagues := make(map[int64]int)
	kept := make([]domain.Leg, 0, len(eligible))
	for _, leg := range eligible {
		if families[leg.Meta.Family] >= e.cfg.FamilyCap {
			continue
		}
		if leagues[leg.LeagueID] >= e.cfg.LeagueCap {
			continue
		}
		families[leg.Meta.Family]++
		leagues[leg.LeagueID]++

		leg.Meta.LeagueWeight = e.LeagueWeight(leg.LeagueID)
		kept = append(kept, leg)
	}
	return kept
}
