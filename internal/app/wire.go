package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mvlatkovic/betmixer/internal/builder"
	"github.com/mvlatkovic/betmixer/internal/cache/redis"
	"github.com/mvlatkovic/betmixer/internal/config"
	"github.com/mvlatkovic/betmixer/internal/domain"
	"github.com/mvlatkovic/betmixer/internal/eval"
	"github.com/mvlatkovic/betmixer/internal/ingest"
	"github.com/mvlatkovic/betmixer/internal/judge"
	"github.com/mvlatkovic/betmixer/internal/mixer"
	"github.com/mvlatkovic/betmixer/internal/notify"
	"github.com/mvlatkovic/betmixer/internal/rules"
	"github.com/mvlatkovic/betmixer/internal/scorer"
	"github.com/mvlatkovic/betmixer/internal/store/postgres"
)

// Dependencies bundles everything the application modes need to operate.
// It is constructed by Wire and torn down by the returned cleanup
// function. Optional collaborators (stores, cache, lock, judge) are nil
// when their backend is disabled in config.
type Dependencies struct {
	Ingest   *ingest.Service
	Client   *ingest.Client
	Builders *builder.Registry
	Mixer    *mixer.Engine
	Judge    *judge.Judge
	Eval     *eval.Evaluator

	Tickets     domain.TicketStore
	Evaluations domain.EvaluationStore
	RunLock     domain.RunLock

	Notifier *notify.Notifier
}

// Wire constructs the concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that
// must be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- PostgreSQL ---
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		pool := pgClient.Pool()
		deps.Tickets = postgres.NewTicketStore(pool)
		deps.Evaluations = postgres.NewEvaluationStore(pool)
	}

	// --- Redis ---
	var fixtureCache domain.FixtureCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		fixtureCache = redis.NewFixtureCache(redisClient, cfg.Redis.DayTTL.Duration)
		deps.RunLock = redis.NewRunLock(redisClient)
	}

	// --- Ingestion ---
	deps.Client = ingest.NewClient(ingest.ClientConfig{
		BaseURL:           cfg.APIFootball.BaseURL,
		APIKey:            cfg.APIFootball.APIKey,
		Timezone:          cfg.APIFootball.Timezone,
		Timeout:           cfg.APIFootball.Timeout.Duration,
		RequestsPerMinute: cfg.APIFootball.RequestsPerMinute,
		Retries:           cfg.APIFootball.Retries,
		RetryDelay:        cfg.APIFootball.RetryDelay.Duration,
	}, logger)
	deps.Ingest = ingest.NewService(deps.Client, fixtureCache, ingest.ServiceConfig{
		AllowedLeagues: cfg.APIFootball.AllowedLeagues,
		DaysAhead:      cfg.APIFootball.DaysAhead,
		WithStats:      cfg.APIFootball.WithStats,
	}, logger)

	// --- Mixing pipeline ---
	deps.Builders = builder.Default()
	ruleEngine := rules.NewEngine(rules.Config{
		MinOdd:          cfg.Mixer.MinOdd,
		MaxOdd:          cfg.Mixer.MaxOdd,
		FamilyCap:       cfg.Mixer.FamilyCap,
		LeagueCap:       cfg.Mixer.LeagueCap,
		TopLeagues:      cfg.Mixer.TopLeagues,
		TopLeagueWeight: cfg.Mixer.TopLeagueWeight,
	})
	meta := scorer.New(scorer.Config{
		ConfidenceThreshold: cfg.Mixer.ConfidenceThreshold,
		HighOddThreshold:    cfg.Mixer.HighOddThreshold,
	})
	deps.Mixer = mixer.New(ruleEngine, meta, mixer.Config{
		TargetCombos:  cfg.Mixer.TargetCombos,
		LegsPerTicket: cfg.Mixer.LegsPerTicket,
		TopTickets:    cfg.Mixer.TopTickets,
	}, logger)

	// --- Judge ---
	if cfg.Judge.Enabled {
		chat := judge.NewChatClient(judge.ChatConfig{
			BaseURL:     cfg.Judge.BaseURL,
			APIKey:      cfg.Judge.APIKey,
			Model:       cfg.Judge.Model,
			Temperature: cfg.Judge.Temperature,
			Timeout:     cfg.Judge.Timeout.Duration,
		})
		deps.Judge = judge.New(chat, cfg.Judge.MinConfidence, logger)
	}

	// --- Evaluator ---
	deps.Eval = eval.New(logger)

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, logger)

	return deps, cleanup, nil
}
