package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// ServiceConfig tunes the ingestion run.
type ServiceConfig struct {
	// AllowedLeagues restricts ingestion to these league IDs. Empty admits
	// every league.
	AllowedLeagues []int64
	// DaysAhead is the number of days beyond today to scan for fixtures.
	DaysAhead int
	// WithStats enables per-team statistics lookups to feed the meta-model.
	WithStats bool
}

// Service orchestrates the ingestion run: it pulls fixtures and odds per
// date, joins them, filters to allowed leagues, and optionally attaches
// team statistics. A day cache, when present, short-circuits repeated runs
// on the same dates.
type Service struct {
	client    *Client
	cache     domain.FixtureCache
	allowed   map[int64]bool
	daysAhead int
	withStats bool
	logger    *slog.Logger
}

// NewService builds an ingestion service. cache may be nil when no cache
// backend is configured.
func NewService(client *Client, cache domain.FixtureCache, cfg ServiceConfig, logger *slog.Logger) *Service {
	allowed := make(map[int64]bool, len(cfg.AllowedLeagues))
	for _, id := range cfg.AllowedLeagues {
		allowed[id] = true
	}
	return &Service{
		client:    client,
		cache:     cache,
		allowed:   allowed,
		daysAhead: cfg.DaysAhead,
		withStats: cfg.WithStats,
		logger:    logger.With(slog.String("component", "ingest")),
	}
}

// FixturesForRun materializes the fixture batch for a generation run
// anchored at now: every allowed-league fixture with usable odds across
// today and the configured look-ahead window, sorted by kickoff. When
// statistics are enabled it also returns derived signals keyed by fixture
// ID.
func (s *Service) FixturesForRun(ctx context.Context, now time.Time) ([]domain.Fixture, map[int64]domain.SignalBundle, error) {
	days := make([][]domain.Fixture, s.daysAhead+1)

	g, gctx := errgroup.WithContext(ctx)
	for offset := 0; offset <= s.daysAhead; offset++ {
		offset := offset
		g.Go(func() error {
			date := now.AddDate(0, 0, offset).Format("2006-01-02")
			fixtures, err := s.fetchDay(gctx, date)
			if err != nil {
				return err
			}
			days[offset] = fixtures
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var fixtures []domain.Fixture
	for _, day := range days {
		fixtures = append(fixtures, day...)
	}
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].KickoffAt.Before(fixtures[j].KickoffAt)
	})

	var signals map[int64]domain.SignalBundle
	if s.withStats {
		signals = s.attachStats(ctx, fixtures)
	}

	s.logger.InfoContext(ctx, "ingestion run completed",
		slog.Int("fixtures", len(fixtures)),
		slog.Int("days", s.daysAhead+1),
		slog.Bool("with_stats", s.withStats),
	)
	return fixtures, signals, nil
}

// fetchDay returns the filtered, odds-joined fixtures for one calendar
// date, serving from the cache when possible.
func (s *Service) fetchDay(ctx context.Context, date string) ([]domain.Fixture, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDay(ctx, date)
		if err == nil {
			s.logger.DebugContext(ctx, "day cache hit", slog.String("date", date), slog.Int("fixtures", len(cached)))
			return cached, nil
		}
	}

	fixtures, err := s.client.FixturesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	odds, err := s.client.OddsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if len(s.allowed) > 0 && !s.allowed[f.LeagueID] {
			continue
		}
		if !validFixture(f) {
			continue
		}
		bundle, ok := odds[f.FixtureID]
		if !ok {
			continue
		}
		f.Odds = bundle
		kept = append(kept, f)
	}

	if s.cache != nil {
		if err := s.cache.SetDay(ctx, date, kept); err != nil {
			s.logger.WarnContext(ctx, "day cache write failed",
				slog.String("date", date),
				slog.String("error", err.Error()),
			)
		}
	}
	return kept, nil
}

// attachStats fetches team statistics per fixture and derives signal
// bundles. A fixture whose lookups both fail is marked stats-missing so
// the rule engine excludes its legs; partial data still yields signals.
func (s *Service) attachStats(ctx context.Context, fixtures []domain.Fixture) map[int64]domain.SignalBundle {
	signals := make(map[int64]domain.SignalBundle, len(fixtures))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range fixtures {
		f := &fixtures[i]
		g.Go(func() error {
			home, homeErr := s.client.TeamStatistics(gctx, f.HomeTeamID, f.LeagueID, f.Season)
			away, awayErr := s.client.TeamStatistics(gctx, f.AwayTeamID, f.LeagueID, f.Season)
			if homeErr != nil && awayErr != nil {
				s.logger.WarnContext(gctx, "team statistics unavailable",
					slog.Int64("fixture_id", f.FixtureID),
					slog.String("error", fmt.Sprintf("home: %v, away: %v", homeErr, awayErr)),
				)
				f.StatsMissing = true
				return nil
			}

			mu.Lock()
			signals[f.FixtureID] = SignalsFromStats(home, away)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return signals
}
