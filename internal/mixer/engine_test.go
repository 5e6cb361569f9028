package mixer

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
	"github.com/mvlatkovic/betmixer/internal/rules"
	"github.com/mvlatkovic/betmixer/internal/scorer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine(ruleCfg rules.Config, cfg Config) *Engine {
	return New(rules.NewEngine(ruleCfg), scorer.New(scorer.Config{}), cfg, testLogger())
}

func overLeg(fixtureID, leagueID int64, odd float64) domain.Leg {
	return domain.Leg{
		FixtureID: fixtureID,
		LeagueID:  leagueID,
		HomeTeam:  "Home",
		AwayTeam:  "Away",
		Market:    "O15_HT",
		Odd:       odd,
		Meta:      domain.LegMeta{Family: "GOALS", LeagueWeight: 1, StatsAvailable: true},
	}
}

func TestRankOrdersByConfidence(t *testing.T) {
	e := testEngine(rules.Config{}, Config{LegsPerTicket: 1, TopTickets: 3, TargetCombos: 60})
	legs := []domain.Leg{
		{FixtureID: 1, Odd: 1.2, Confidence: 62},
		{FixtureID: 2, Odd: 1.2, Confidence: 80},
		{FixtureID: 3, Odd: 1.2, Confidence: 70},
	}
	tickets := e.Rank(time.Now(), legs)
	if len(tickets) != 3 {
		t.Fatalf("got %d tickets, want 3", len(tickets))
	}
	if tickets[0].ConfidenceAvg != 80 || tickets[1].ConfidenceAvg != 70 || tickets[2].ConfidenceAvg != 62 {
		t.Errorf("confidence order = %d, %d, %d", tickets[0].ConfidenceAvg, tickets[1].ConfidenceAvg, tickets[2].ConfidenceAvg)
	}
}

func TestRankTruncatesToTopTickets(t *testing.T) {
	e := testEngine(rules.Config{}, Config{LegsPerTicket: 1, TopTickets: 2, TargetCombos: 60})
	legs := []domain.Leg{
		{FixtureID: 1, Odd: 1.2, Confidence: 62},
		{FixtureID: 2, Odd: 1.2, Confidence: 80},
		{FixtureID: 3, Odd: 1.2, Confidence: 70},
	}
	tickets := e.Rank(time.Now(), legs)
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}
}

func TestRankTicketIDsAreUnique(t *testing.T) {
	e := testEngine(rules.Config{}, Config{LegsPerTicket: 2, TopTickets: 3, TargetCombos: 60})
	legs := []domain.Leg{
		{FixtureID: 1, Odd: 1.2, Confidence: 70},
		{FixtureID: 2, Odd: 1.2, Confidence: 70},
		{FixtureID: 3, Odd: 1.2, Confidence: 70},
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	tickets := e.Rank(now, legs)
	seen := make(map[string]bool)
	for _, ticket := range tickets {
		if !strings.HasPrefix(ticket.ID, "TKT-2026-09-01-") {
			t.Errorf("ticket ID %q lacks date prefix", ticket.ID)
		}
		if seen[ticket.ID] {
			t.Errorf("duplicate ticket ID %q", ticket.ID)
		}
		seen[ticket.ID] = true
	}
}

// End-to-end pipeline over five over-1.5 candidates with a stats-backed
// signal provider. Only the three shortest odds survive scoring; they form
// exactly one three-leg ticket.
func TestMixAndRankPipeline(t *testing.T) {
	e := testEngine(
		rules.Config{FamilyCap: 5, LeagueCap: 5},
		Config{},
	)

	// All five leagues are in the top set, so every leg gets weight 1.25.
	legs := []domain.Leg{
		overLeg(1, 39, 1.12),
		overLeg(2, 140, 1.15),
		overLeg(3, 135, 1.20),
		overLeg(4, 78, 1.30),
		overLeg(5, 61, 1.40),
	}

	provider := func(domain.Leg) domain.SignalBundle {
		return domain.SignalBundle{Form: 80, XG: 40, Shots: 100, Momentum: 40, H2H: 50}
	}

	tickets := e.MixAndRank(time.Now(), legs, provider)
	if len(tickets) != 1 {
		t.Fatalf("got %d tickets, want 1", len(tickets))
	}

	ticket := tickets[0]
	if ticket.LegCount != 3 {
		t.Fatalf("leg count = %d, want 3", ticket.LegCount)
	}

	// Confidences: 70, 67, 62; the 1.30 and 1.40 legs score 52 and drop.
	wantConf := map[int64]int{1: 70, 2: 67, 3: 62}
	for _, leg := range ticket.Legs {
		if want, ok := wantConf[leg.FixtureID]; !ok || leg.Confidence != want {
			t.Errorf("leg fixture %d confidence = %d, want %d", leg.FixtureID, leg.Confidence, want)
		}
	}

	// 1.12 * 1.15 * 1.20 = 1.5456, rounded to 1.55.
	if ticket.TotalOdd != 1.55 {
		t.Errorf("total odd = %v, want 1.55", ticket.TotalOdd)
	}
	// round((70+67+62)/3) = 66.
	if ticket.ConfidenceAvg != 66 {
		t.Errorf("confidence avg = %d, want 66", ticket.ConfidenceAvg)
	}
	if ticket.Summary != "Auto-mixed ticket with 3 legs" {
		t.Errorf("summary = %q", ticket.Summary)
	}
}

func TestMixAndRankEmptyWhenNothingSurvives(t *testing.T) {
	e := testEngine(rules.Config{}, Config{})
	legs := []domain.Leg{overLeg(1, 999, 2.5)} // outside the odds window
	if tickets := e.MixAndRank(time.Now(), legs, nil); len(tickets) != 0 {
		t.Errorf("got %d tickets, want 0", len(tickets))
	}
}

func TestPresent(t *testing.T) {
	tickets := []domain.Ticket{
		{
			ID:            "TKT-1",
			ConfidenceAvg: 80,
			Legs: []domain.Leg{
				{Market: "O15_HT"},
				{Market: "DRAW_SFTY"},
				{Market: "BTTS_STRICT"},
			},
		},
		{
			ID:            "TKT-2",
			ConfidenceAvg: 66,
			Legs:          []domain.Leg{{Market: "O15_HT"}},
		},
	}

	views := Present(tickets, 3)
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}

	if views[0].Tag != "#O15_HT_DRAW_SFTY_BTTS_STRICT" {
		t.Errorf("tag = %q", views[0].Tag)
	}
	if views[0].Emoji != "🟢" {
		t.Errorf("emoji = %q, want green above 75", views[0].Emoji)
	}
	if views[0].Fallback != "" {
		t.Errorf("full ticket should carry no fallback, got %q", views[0].Fallback)
	}

	if views[1].Emoji != "🟡" {
		t.Errorf("emoji = %q, want yellow at 66", views[1].Emoji)
	}
	if views[1].Fallback != "HT-only" {
		t.Errorf("fallback = %q, want HT-only for a short ticket", views[1].Fallback)
	}
}
