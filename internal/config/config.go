// Package config defines the top-level configuration for the ticket mixer
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by BETMIX_* environment
// variables.
type Config struct {
	APIFootball APIFootballConfig `toml:"api_football"`
	Judge       JudgeConfig       `toml:"judge"`
	Postgres    PostgresConfig    `toml:"postgres"`
	Redis       RedisConfig       `toml:"redis"`
	Mixer       MixerConfig       `toml:"mixer"`
	Notify      NotifyConfig      `toml:"notify"`
	Output      OutputConfig      `toml:"output"`
	Mode        string            `toml:"mode"`
	LogLevel    string            `toml:"log_level"`
}

// APIFootballConfig holds provider credentials and the ingestion window.
type APIFootballConfig struct {
	BaseURL           string   `toml:"base_url"`
	APIKey            string   `toml:"api_key"`
	Timezone          string   `toml:"timezone"`
	Timeout           duration `toml:"timeout"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Retries           int      `toml:"retries"`
	RetryDelay        duration `toml:"retry_delay"`
	DaysAhead         int      `toml:"days_ahead"`
	AllowedLeagues    []int64  `toml:"allowed_leagues"`
	WithStats         bool     `toml:"with_stats"`
}

// JudgeConfig holds the optional LLM vetting stage parameters.
type JudgeConfig struct {
	Enabled       bool     `toml:"enabled"`
	BaseURL       string   `toml:"base_url"`
	APIKey        string   `toml:"api_key"`
	Model         string   `toml:"model"`
	Temperature   float64  `toml:"temperature"`
	Timeout       duration `toml:"timeout"`
	MinConfidence int      `toml:"min_confidence"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Enabled    bool     `toml:"enabled"`
	Addr       string   `toml:"addr"`
	Password   string   `toml:"password"`
	DB         int      `toml:"db"`
	PoolSize   int      `toml:"pool_size"`
	MaxRetries int      `toml:"max_retries"`
	TLSEnabled bool     `toml:"tls_enabled"`
	DayTTL     duration `toml:"day_ttl"`
}

// MixerConfig holds every tunable of the candidate pipeline: the rule
// engine's odds window and caps, the meta-model thresholds, and the
// combination and ranking bounds.
type MixerConfig struct {
	MinOdd              float64 `toml:"min_odd"`
	MaxOdd              float64 `toml:"max_odd"`
	FamilyCap           int     `toml:"family_cap"`
	LeagueCap           int     `toml:"league_cap"`
	TopLeagues          []int64 `toml:"top_leagues"`
	TopLeagueWeight     float64 `toml:"top_league_weight"`
	ConfidenceThreshold int     `toml:"confidence_threshold"`
	HighOddThreshold    float64 `toml:"high_odd_threshold"`
	TargetCombos        int     `toml:"target_combos"`
	LegsPerTicket       int     `toml:"legs_per_ticket"`
	TopTickets          int     `toml:"top_tickets"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string `toml:"telegram_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// OutputConfig holds local artifact parameters.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// duration wraps time.Duration so the TOML decoder accepts strings like
// "5m" or "30s".
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with the reference values. These
// match config.example.toml.
func Defaults() Config {
	return Config{
		APIFootball: APIFootballConfig{
			BaseURL:           "https://v3.football.api-sports.io",
			Timezone:          "Europe/Belgrade",
			Timeout:           duration{15 * time.Second},
			RequestsPerMinute: 30,
			Retries:           2,
			RetryDelay:        duration{500 * time.Millisecond},
			DaysAhead:         2,
			AllowedLeagues: []int64{
				39, 140, 135, 3, 14, 2, 848, 38, 78, 79, 61,
				62, 218, 88, 89, 203, 40, 119, 136, 736, 207,
			},
			WithStats: false,
		},
		Judge: JudgeConfig{
			Enabled:       false,
			BaseURL:       "https://api.openai.com/v1",
			Model:         "gpt-4o-mini",
			Temperature:   0.2,
			Timeout:       duration{30 * time.Second},
			MinConfidence: 62,
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          5432,
			Database:      "betmixer",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
			DayTTL:     duration{6 * time.Hour},
		},
		Mixer: MixerConfig{
			MinOdd:              1.08,
			MaxOdd:              1.5,
			FamilyCap:           2,
			LeagueCap:           2,
			TopLeagues:          []int64{39, 140, 135, 78, 61},
			TopLeagueWeight:     1.25,
			ConfidenceThreshold: 62,
			HighOddThreshold:    1.4,
			TargetCombos:        60,
			LegsPerTicket:       3,
			TopTickets:          3,
		},
		Output: OutputConfig{
			Dir: "data/output",
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"ingest":   true,
	"generate": true,
	"evaluate": true,
	"full":     true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and
// returns a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: ingest, generate, evaluate, full)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.APIFootball.BaseURL == "" {
		errs = append(errs, "api_football: base_url must not be empty")
	}
	if c.APIFootball.APIKey == "" {
		errs = append(errs, "api_football: api_key must be set")
	}
	if c.APIFootball.DaysAhead < 0 {
		errs = append(errs, "api_football: days_ahead must be >= 0")
	}

	if c.Judge.Enabled && c.Judge.APIKey == "" {
		errs = append(errs, "judge: api_key is required when enabled")
	}

	if c.Postgres.Enabled {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 {
			errs = append(errs, "postgres: pool_min_conns must be >= 0")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if c.Mixer.MinOdd <= 1 {
		errs = append(errs, "mixer: min_odd must be > 1")
	}
	if c.Mixer.MaxOdd <= c.Mixer.MinOdd {
		errs = append(errs, "mixer: max_odd must exceed min_odd")
	}
	if c.Mixer.FamilyCap < 1 {
		errs = append(errs, "mixer: family_cap must be >= 1")
	}
	if c.Mixer.LeagueCap < 1 {
		errs = append(errs, "mixer: league_cap must be >= 1")
	}
	if c.Mixer.TopLeagueWeight < 1 {
		errs = append(errs, "mixer: top_league_weight must be >= 1")
	}
	if c.Mixer.ConfidenceThreshold < 0 || c.Mixer.ConfidenceThreshold > 100 {
		errs = append(errs, fmt.Sprintf("mixer: confidence_threshold must be 0-100, got %d", c.Mixer.ConfidenceThreshold))
	}
	if c.Mixer.TargetCombos < 1 {
		errs = append(errs, "mixer: target_combos must be >= 1")
	}
	if c.Mixer.LegsPerTicket < 1 {
		errs = append(errs, "mixer: legs_per_ticket must be >= 1")
	}
	if c.Mixer.TopTickets < 1 {
		errs = append(errs, "mixer: top_tickets must be >= 1")
	}

	if c.Output.Dir == "" {
		errs = append(errs, "output: dir must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
