package eval

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

func testEvaluator() *Evaluator {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLegHit(t *testing.T) {
	cases := []struct {
		market string
		score  domain.FinalScore
		want   bool
	}{
		{"DRAW_SFTY", domain.FinalScore{Home: 1, Away: 1}, true},
		{"DRAW_SFTY", domain.FinalScore{Home: 2, Away: 1}, false},
		{"O15_HT", domain.FinalScore{Home: 1, Away: 1}, true},
		{"O15_HT", domain.FinalScore{Home: 1, Away: 0}, false},
		{"U25_SAFE", domain.FinalScore{Home: 1, Away: 1}, true},
		{"U25_SAFE", domain.FinalScore{Home: 2, Away: 1}, false},
		{"BTTS_STRICT", domain.FinalScore{Home: 2, Away: 0}, true},
		{"BTTS_STRICT", domain.FinalScore{Home: 0, Away: 0}, true},
		{"BTTS_STRICT", domain.FinalScore{Home: 1, Away: 1}, false},
		{"UNKNOWN", domain.FinalScore{Home: 0, Away: 0}, false},
	}
	for _, tc := range cases {
		if got := legHit(tc.market, tc.score); got != tc.want {
			t.Errorf("legHit(%s, %d:%d) = %v, want %v", tc.market, tc.score.Home, tc.score.Away, got, tc.want)
		}
	}
}

func ticket(id string, legs ...domain.Leg) domain.Ticket {
	return domain.Ticket{ID: id, Legs: legs, LegCount: len(legs)}
}

func leg(fixtureID int64, market string) domain.Leg {
	return domain.Leg{FixtureID: fixtureID, Market: market, Odd: 1.2, Confidence: 65}
}

func TestEvaluateWinningDay(t *testing.T) {
	tickets := []domain.Ticket{
		ticket("T1", leg(1, "O15_HT"), leg(2, "DRAW_SFTY")),
		ticket("T2", leg(3, "U25_SAFE")),
	}
	scores := map[int64]domain.FinalScore{
		1: {Home: 2, Away: 1},
		2: {Home: 0, Away: 0},
		3: {Home: 1, Away: 0},
	}

	ev := testEvaluator().Evaluate("2026-08-31", time.Now(), tickets, scores, 2)

	if ev.TotalLegs != 3 || ev.Hits != 3 || ev.Misses != 0 {
		t.Errorf("legs = %d/%d/%d, want 3/3/0", ev.TotalLegs, ev.Hits, ev.Misses)
	}
	if ev.HitRate != 100 {
		t.Errorf("hit rate = %v, want 100", ev.HitRate)
	}
	if ev.TicketsWon != 2 || ev.TicketsPlayed != 2 {
		t.Errorf("tickets = %d/%d, want 2/2", ev.TicketsWon, ev.TicketsPlayed)
	}
	if ev.Streak != 3 {
		t.Errorf("streak = %d, want prev+1 = 3", ev.Streak)
	}
	if len(ev.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(ev.Items))
	}
	if ev.Items[0].Result != "2:1" {
		t.Errorf("item result = %q, want 2:1", ev.Items[0].Result)
	}
}

func TestEvaluateMixedDay(t *testing.T) {
	tickets := []domain.Ticket{
		ticket("T1", leg(1, "O15_HT"), leg(2, "O15_HT"), leg(3, "O15_HT")),
	}
	scores := map[int64]domain.FinalScore{
		1: {Home: 2, Away: 1},
		2: {Home: 1, Away: 1},
		3: {Home: 0, Away: 0}, // miss
	}

	ev := testEvaluator().Evaluate("2026-08-31", time.Now(), tickets, scores, 4)

	if ev.Hits != 2 || ev.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", ev.Hits, ev.Misses)
	}
	if ev.HitRate != 66.67 {
		t.Errorf("hit rate = %v, want 66.67", ev.HitRate)
	}
	if ev.TicketsWon != 0 {
		t.Errorf("tickets won = %d, want 0", ev.TicketsWon)
	}
	if ev.Streak != 0 {
		t.Errorf("streak = %d, want reset to 0", ev.Streak)
	}
}

func TestEvaluateMissingScoreBlocksWin(t *testing.T) {
	tickets := []domain.Ticket{
		ticket("T1", leg(1, "O15_HT"), leg(2, "O15_HT")),
	}
	scores := map[int64]domain.FinalScore{
		1: {Home: 2, Away: 1},
		// fixture 2 unsettled
	}

	ev := testEvaluator().Evaluate("2026-08-31", time.Now(), tickets, scores, 0)

	if ev.TotalLegs != 1 || ev.Hits != 1 {
		t.Errorf("settled legs = %d with %d hits, want 1/1", ev.TotalLegs, ev.Hits)
	}
	if len(ev.Items) != 1 {
		t.Errorf("items = %d, want only the settled leg", len(ev.Items))
	}
	if ev.TicketsWon != 0 {
		t.Errorf("tickets won = %d, a ticket with an unsettled leg cannot win", ev.TicketsWon)
	}
}

func TestEvaluateEmptyDay(t *testing.T) {
	ev := testEvaluator().Evaluate("2026-08-31", time.Now(), nil, nil, 5)
	if ev.HitRate != 0 || ev.Streak != 0 {
		t.Errorf("empty day: hitRate=%v streak=%d, want zeroes", ev.HitRate, ev.Streak)
	}
}
