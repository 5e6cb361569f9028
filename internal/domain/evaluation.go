package domain

import "time"

// EvaluationItem is the settled outcome of a single ticket leg.
type EvaluationItem struct {
	TicketID   string
	FixtureID  int64
	Market     string
	Odd        float64
	Confidence int
	Hit        bool
	Result     string // final score, e.g. "2:1"
}

// Evaluation summarises how one day's generated tickets settled against
// final scores.
type Evaluation struct {
	Date          string // YYYY-MM-DD
	GeneratedAt   time.Time
	TotalLegs     int
	Hits          int
	Misses        int
	HitRate       float64 // percentage, 2 decimals
	TicketsWon    int
	TicketsPlayed int
	// Streak counts consecutive days on which every played ticket won.
	Streak int
	Items  []EvaluationItem
}
