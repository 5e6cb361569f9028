package rules

import (
	"testing"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

func leg(fixtureID, leagueID int64, odd float64, family string) domain.Leg {
	return domain.Leg{
		FixtureID: fixtureID,
		LeagueID:  leagueID,
		HomeTeam:  "Home",
		AwayTeam:  "Away",
		Market:    "O15_HT",
		Odd:       odd,
		Meta:      domain.LegMeta{Family: family, LeagueWeight: 1, StatsAvailable: true},
	}
}

func TestOddsWindowInclusive(t *testing.T) {
	e := NewEngine(Config{})
	legs := []domain.Leg{
		leg(1, 10, 1.07, "GOALS"),
		leg(2, 11, 1.08, "GOALS"),
		leg(3, 12, 1.5, "X"),
		leg(4, 13, 1.51, "Y"),
	}
	kept := e.Apply(legs)
	if len(kept) != 2 {
		t.Fatalf("kept %d legs, want 2", len(kept))
	}
	if kept[0].FixtureID != 2 || kept[1].FixtureID != 3 {
		t.Errorf("kept fixtures %d, %d; want boundary legs 2 and 3", kept[0].FixtureID, kept[1].FixtureID)
	}
}

func TestStatsGate(t *testing.T) {
	e := NewEngine(Config{})
	gated := leg(1, 10, 1.2, "GOALS")
	gated.Meta.StatsAvailable = false
	kept := e.Apply([]domain.Leg{gated, leg(2, 11, 1.2, "GOALS")})
	if len(kept) != 1 || kept[0].FixtureID != 2 {
		t.Fatalf("kept = %+v, want only fixture 2", kept)
	}
}

func TestTopLeaguesSortFirst(t *testing.T) {
	e := NewEngine(Config{})
	kept := e.Apply([]domain.Leg{
		leg(1, 999, 1.2, "A"),
		leg(2, 39, 1.2, "B"), // Premier League, weight 1.25
		leg(3, 998, 1.2, "C"),
	})
	if len(kept) != 3 {
		t.Fatalf("kept %d legs, want 3", len(kept))
	}
	if kept[0].FixtureID != 2 {
		t.Errorf("first kept fixture = %d, want top-league leg 2", kept[0].FixtureID)
	}
	// Stable sort keeps the relative order of equal-weight legs.
	if kept[1].FixtureID != 1 || kept[2].FixtureID != 3 {
		t.Errorf("equal-weight order = %d, %d; want 1, 3", kept[1].FixtureID, kept[2].FixtureID)
	}
}

func TestLeagueWeightAttached(t *testing.T) {
	e := NewEngine(Config{})
	kept := e.Apply([]domain.Leg{leg(1, 140, 1.2, "A"), leg(2, 999, 1.2, "B")})
	if len(kept) != 2 {
		t.Fatalf("kept %d legs, want 2", len(kept))
	}
	if kept[0].Meta.LeagueWeight != 1.25 {
		t.Errorf("top-league weight = %v, want 1.25", kept[0].Meta.LeagueWeight)
	}
	if kept[1].Meta.LeagueWeight != 1 {
		t.Errorf("default weight = %v, want 1", kept[1].Meta.LeagueWeight)
	}
}

func TestFamilyCapIsGlobal(t *testing.T) {
	e := NewEngine(Config{})
	kept := e.Apply([]domain.Leg{
		leg(1, 10, 1.2, "GOALS"),
		leg(2, 11, 1.2, "GOALS"),
		leg(3, 12, 1.2, "GOALS"),
		leg(4, 13, 1.2, "BTTS"),
	})
	if len(kept) != 3 {
		t.Fatalf("kept %d legs, want 3", len(kept))
	}
	families := make(map[string]int)
	for _, l := range kept {
		families[l.Meta.Family]++
	}
	if families["GOALS"] != 2 || families["BTTS"] != 1 {
		t.Errorf("family counts = %v, want GOALS:2 BTTS:1", families)
	}
}

func TestLeagueCap(t *testing.T) {
	e := NewEngine(Config{})
	kept := e.Apply([]domain.Leg{
		leg(1, 39, 1.2, "A"),
		leg(2, 39, 1.2, "B"),
		leg(3, 39, 1.2, "C"),
	})
	if len(kept) != 2 {
		t.Fatalf("kept %d legs from one league, want 2", len(kept))
	}
}

func TestTopLeaguesClaimScarceSlots(t *testing.T) {
	// With a shared family at its cap, the top-league leg wins the slot
	// even when it arrives later in the input.
	e := NewEngine(Config{FamilyCap: 1})
	kept := e.Apply([]domain.Leg{
		leg(1, 999, 1.2, "GOALS"),
		leg(2, 61, 1.2, "GOALS"), // Ligue 1
	})
	if len(kept) != 1 || kept[0].FixtureID != 2 {
		t.Fatalf("kept = %+v, want only the top-league leg", kept)
	}
}

func TestCustomConfig(t *testing.T) {
	e := NewEngine(Config{
		MinOdd:          1.5,
		MaxOdd:          2.0,
		FamilyCap:       5,
		LeagueCap:       5,
		TopLeagues:      []int64{77},
		TopLeagueWeight: 2,
	})
	kept := e.Apply([]domain.Leg{
		leg(1, 77, 1.6, "A"),
		leg(2, 39, 1.6, "B"),
		leg(3, 77, 1.2, "C"),
	})
	if len(kept) != 2 {
		t.Fatalf("kept %d legs, want 2", len(kept))
	}
	if kept[0].LeagueID != 77 || kept[0].Meta.LeagueWeight != 2 {
		t.Errorf("custom top league not honoured: %+v", kept[0])
	}
	if kept[1].Meta.LeagueWeight != 1 {
		t.Errorf("league 39 should not be boosted under a custom set: %+v", kept[1])
	}
}

func TestApplyEmptyInput(t *testing.T) {
	if kept := NewEngine(Config{}).Apply(nil); len(kept) != 0 {
		t.Errorf("kept %d legs from empty input", len(kept))
	}
}
