package domain

import "time"

// Ticket is a fixed-size group of legs treated as one aggregated bet.
// TotalOdd and ConfidenceAvg are derived at construction by the ranker and
// never mutated independently; tickets are immutable once created.
type Ticket struct {
	ID            string
	CreatedAt     time.Time
	Legs          []Leg
	TotalOdd      float64
	ConfidenceAvg int
	Summary       string
	LegCount      int
}

// SignalBundle carries the numeric features the meta-model scorer blends
// into a leg's confidence. Absent features stay at zero.
type SignalBundle struct {
	Form     float64
	XG       float64
	Shots    float64
	Momentum float64
	H2H      float64
}

// SignalProvider supplies the signal bundle for a leg. Providers are
// pluggable; an external collaborator may supply real statistical features
// while the reference pipeline derives a placeholder from league weight.
type SignalProvider func(Leg) SignalBundle
