package mixer

import (
	"log/slog"
	"sort"
	"time"

	"github.com/mvlatkovic/betmixer/internal/domain"
	"github.com/mvlatkovic/betmixer/internal/rules"
	"github.com/mvlatkovic/betmixer/internal/scorer"
)

// Config carries the mixing-stage tunables. Zero values fall back to the
// reference defaults.
type Config struct {
	// TargetCombos bounds the combination enumeration.
	TargetCombos int
	// LegsPerTicket is the fixed tuple size.
	LegsPerTicket int
	// TopTickets is the number of ranked tickets returned per run.
	TopTickets int
}

// Defaults returns the reference mixing parameters: 60 combinations of 3
// legs, top 3 tickets.
func Defaults() Config {
	return Config{
		TargetCombos:  60,
		LegsPerTicket: 3,
		TopTickets:    3,
	}
}

// Engine runs the mixing pipeline over candidate legs: rule filtering,
// meta-model scoring, bounded combination enumeration, and ticket ranking.
// It is single-threaded, synchronous, and deterministic for a fixed input
// and signal provider.
type Engine struct {
	rules  *rules.Engine
	scorer *scorer.MetaModel
	cfg    Config
	logger *slog.Logger
}

// New builds an Engine, filling unset config fields from Defaults.
func New(ruleEngine *rules.Engine, meta *scorer.MetaModel, cfg Config, logger *slog.Logger) *Engine {
	def := Defaults()
	if cfg.TargetCombos == 0 {
		cfg.TargetCombos = def.TargetCombos
	}
	if cfg.LegsPerTicket == 0 {
		cfg.LegsPerTicket = def.LegsPerTicket
	}
	if cfg.TopTickets == 0 {
		cfg.TopTickets = def.TopTickets
	}
	return &Engine{
		rules:  ruleEngine,
		scorer: meta,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "mixer")),
	}
}

// LegsPerTicket returns the configured tuple size.
func (e *Engine) LegsPerTicket() int { return e.cfg.LegsPerTicket }

// Filter applies the diversification rule set.
func (e *Engine) Filter(legs []domain.Leg) []domain.Leg {
	return e.rules.Apply(legs)
}

// Score runs the meta-model over filtered legs. A nil provider uses the
// league-weight placeholder signals.
func (e *Engine) Score(legs []domain.Leg, provider domain.SignalProvider) []domain.Leg {
	return e.scorer.Score(legs, provider)
}

// Rank enumerates combinations over the scored legs, aggregates each into
// a ticket, and returns the top tickets sorted by descending average
// confidence. The sort is stable, so earlier combinations win ties.
func (e *Engine) Rank(now time.Time, legs []domain.Leg) []domain.Ticket {
	combos := Combinations(legs, e.cfg.TargetCombos, e.cfg.LegsPerTicket)

	ids := NewTicketIDs(now)
	tickets := make([]domain.Ticket, 0, len(combos))
	for _, combo := range combos {
		tickets = append(tickets, scoreTicket(ids, now, combo))
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].ConfidenceAvg > tickets[j].ConfidenceAvg
	})

	if len(tickets) > e.cfg.TopTickets {
		tickets = tickets[:e.cfg.TopTickets]
	}
	return tickets
}

// MixAndRank is the full pipeline: Filter, Score, Rank.
func (e *Engine) MixAndRank(now time.Time, legs []domain.Leg, provider domain.SignalProvider) []domain.Ticket {
	filtered := e.Filter(legs)
	scored := e.Score(filtered, provider)
	tickets := e.Rank(now, scored)

	e.logger.Info("mix completed",
		slog.Int("candidate_legs", len(legs)),
		slog.Int("filtered_legs", len(filtered)),
		slog.Int("scored_legs", len(scored)),
		slog.Int("tickets", len(tickets)),
	)
	return tickets
}
