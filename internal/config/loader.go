package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies BETMIX_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known BETMIX_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── API-Football ──
	setStr(&cfg.APIFootball.BaseURL, "BETMIX_API_FOOTBALL_BASE_URL")
	setStr(&cfg.APIFootball.APIKey, "BETMIX_API_FOOTBALL_API_KEY")
	setStr(&cfg.APIFootball.APIKey, "API_FOOTBALL_KEY") // compatibility alias
	setStr(&cfg.APIFootball.Timezone, "BETMIX_API_FOOTBALL_TIMEZONE")
	setDuration(&cfg.APIFootball.Timeout, "BETMIX_API_FOOTBALL_TIMEOUT")
	setInt(&cfg.APIFootball.RequestsPerMinute, "BETMIX_API_FOOTBALL_REQUESTS_PER_MINUTE")
	setInt(&cfg.APIFootball.Retries, "BETMIX_API_FOOTBALL_RETRIES")
	setDuration(&cfg.APIFootball.RetryDelay, "BETMIX_API_FOOTBALL_RETRY_DELAY")
	setInt(&cfg.APIFootball.DaysAhead, "BETMIX_API_FOOTBALL_DAYS_AHEAD")
	setInt(&cfg.APIFootball.DaysAhead, "DAYS_AHEAD") // compatibility alias
	setInt64Slice(&cfg.APIFootball.AllowedLeagues, "BETMIX_API_FOOTBALL_ALLOWED_LEAGUES")
	setBool(&cfg.APIFootball.WithStats, "BETMIX_API_FOOTBALL_WITH_STATS")

	// ── Judge ──
	setBool(&cfg.Judge.Enabled, "BETMIX_JUDGE_ENABLED")
	setStr(&cfg.Judge.BaseURL, "BETMIX_JUDGE_BASE_URL")
	setStr(&cfg.Judge.APIKey, "BETMIX_JUDGE_API_KEY")
	setStr(&cfg.Judge.APIKey, "OPENAI_API_KEY") // compatibility alias
	setStr(&cfg.Judge.Model, "BETMIX_JUDGE_MODEL")
	setFloat64(&cfg.Judge.Temperature, "BETMIX_JUDGE_TEMPERATURE")
	setDuration(&cfg.Judge.Timeout, "BETMIX_JUDGE_TIMEOUT")
	setInt(&cfg.Judge.MinConfidence, "BETMIX_JUDGE_MIN_CONFIDENCE")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "BETMIX_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "BETMIX_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "BETMIX_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "BETMIX_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "BETMIX_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "BETMIX_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "BETMIX_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "BETMIX_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "BETMIX_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "BETMIX_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "BETMIX_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "BETMIX_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "BETMIX_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "BETMIX_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "BETMIX_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "BETMIX_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "BETMIX_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "BETMIX_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.DayTTL, "BETMIX_REDIS_DAY_TTL")

	// ── Mixer ──
	setFloat64(&cfg.Mixer.MinOdd, "BETMIX_MIXER_MIN_ODD")
	setFloat64(&cfg.Mixer.MaxOdd, "BETMIX_MIXER_MAX_ODD")
	setInt(&cfg.Mixer.FamilyCap, "BETMIX_MIXER_FAMILY_CAP")
	setInt(&cfg.Mixer.LeagueCap, "BETMIX_MIXER_LEAGUE_CAP")
	setInt64Slice(&cfg.Mixer.TopLeagues, "BETMIX_MIXER_TOP_LEAGUES")
	setFloat64(&cfg.Mixer.TopLeagueWeight, "BETMIX_MIXER_TOP_LEAGUE_WEIGHT")
	setInt(&cfg.Mixer.ConfidenceThreshold, "BETMIX_MIXER_CONFIDENCE_THRESHOLD")
	setFloat64(&cfg.Mixer.HighOddThreshold, "BETMIX_MIXER_HIGH_ODD_THRESHOLD")
	setInt(&cfg.Mixer.TargetCombos, "BETMIX_MIXER_TARGET_COMBOS")
	setInt(&cfg.Mixer.LegsPerTicket, "BETMIX_MIXER_LEGS_PER_TICKET")
	setInt(&cfg.Mixer.TopTickets, "BETMIX_MIXER_TOP_TICKETS")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "BETMIX_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "BETMIX_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "BETMIX_NOTIFY_DISCORD_WEBHOOK_URL")

	// ── Output ──
	setStr(&cfg.Output.Dir, "BETMIX_OUTPUT_DIR")

	// ── Top-level ──
	setStr(&cfg.Mode, "BETMIX_MODE")
	setStr(&cfg.LogLevel, "BETMIX_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setInt64Slice(dst *[]int64, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parts := strings.Split(v, ",")
	parsed := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return
		}
		parsed = append(parsed, n)
	}
	if len(parsed) > 0 {
		*dst = parsed
	}
}
