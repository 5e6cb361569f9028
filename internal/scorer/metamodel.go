// Package scorer assigns each leg a heuristic confidence score and drops
// legs that fall below the retention threshold. The formula is a fixed
// blend of an odds-derived base and five optional statistical signals.
package scorer

import (
	"fmt"
	"math"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// The odds-derived base score is clamped to this range before signals are
// blended in.
const (
	baseFloor = 30
	baseCeil  = 85
)

// Config carries the scorer's tunables. Zero values fall back to the
// reference defaults.
type Config struct {
	// ConfidenceThreshold is the minimum confidence a leg needs to survive
	// the post-filter; it doubles as the LOW_CONFIDENCE flag boundary.
	ConfidenceThreshold int
	// HighOddThreshold marks legs with the HIGH_ODD risk flag.
	HighOddThreshold float64
}

// Defaults returns the reference thresholds.
func Defaults() Config {
	return Config{
		ConfidenceThreshold: 62,
		HighOddThreshold:    1.4,
	}
}

// MetaModel scores legs against a signal provider.
type MetaModel struct {
	cfg Config
}

// New builds a MetaModel, filling unset config fields from Defaults.
func New(cfg Config) *MetaModel {
	def := Defaults()
	if cfg.ConfidenceThreshold == 0 {
		cfg.ConfidenceThreshold = def.ConfidenceThreshold
	}
	if cfg.HighOddThreshold == 0 {
		cfg.HighOddThreshold = def.HighOddThreshold
	}
	return &MetaModel{cfg: cfg}
}

// ScoreLeg returns a copy of leg annotated with confidence, risk flags,
// and an audit reason string. It never rejects; filtering is Score's job.
func (m *MetaModel) ScoreLeg(leg domain.Leg, signals domain.SignalBundle) domain.Leg {
	base := clamp((1.6-leg.Odd)*100, baseFloor, baseCeil)

	weight := leg.Meta.LeagueWeight
	if weight == 0 {
		weight = 1
	}

	confidence := int(math.Round(math.Min(100,
		base+
			0.10*signals.Form+
			0.05*signals.XG+
			0.03*signals.Shots+
			0.05*signals.Momentum+
			0.02*signals.H2H+
			5*weight,
	)))

	var flags []string
	if leg.Odd > m.cfg.HighOddThreshold {
		flags = append(flags, domain.RiskHighOdd)
	}
	if confidence < m.cfg.ConfidenceThreshold {
		flags = append(flags, domain.RiskLowConfidence)
	}

	leg.Confidence = confidence
	leg.RiskFlags = flags
	leg.Reason = fmt.Sprintf(
		"auto-eval: form=%g, xG=%g, shots=%g, momentum=%g, h2h=%g, base=%.2f",
		signals.Form, signals.XG, signals.Shots, signals.Momentum, signals.H2H, base,
	)
	return leg
}

// Score annotates every leg and keeps only those at or above the
// confidence threshold that do not carry LOW_CONFIDENCE. The two checks
// are equivalent by construction; both are applied as written.
func (m *MetaModel) Score(legs []domain.Leg, provider domain.SignalProvider) []domain.Leg {
	if provider == nil {
		provider = LeagueWeightSignals
	}

	kept := make([]domain.Leg, 0, len(legs))
	for _, leg := range legs {
		scored := m.ScoreLeg(leg, provider(leg))
		if scored.Confidence >= m.cfg.ConfidenceThreshold && !scored.HasRiskFlag(domain.RiskLowConfidence) {
			kept = append(kept, scored)
		}
	}
	return kept
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
