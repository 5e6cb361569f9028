// Package ingest fetches fixtures, odds, and team statistics from the
// API-Football provider and normalizes them into domain records. It is an
// external collaborator of the mixing core: the core only ever sees the
// finite fixture batches this package materializes.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// ClientConfig holds connection and retry parameters for the provider
// client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	// Timezone is passed through to date-scoped endpoints.
	Timezone string
	Timeout  time.Duration
	// RequestsPerMinute throttles outbound calls; 0 disables throttling.
	RequestsPerMinute int
	// Retries is the number of re-attempts after a failed request.
	Retries int
	// RetryDelay is the base backoff; the actual delay grows linearly with
	// the attempt number.
	RetryDelay time.Duration
}

// Client is the REST client for API-Football v3.
type Client struct {
	baseURL    string
	apiKey     string
	timezone   string
	retries    int
	retryDelay time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a provider client. Unset config fields fall back to
// the reference values (15s timeout, 2 retries, 500ms base delay).
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Retries == 0 {
		cfg.Retries = 2
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timezone:   cfg.Timezone,
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
		limiter:    limiter,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "ingest")),
	}
}

// FixturesByDate returns the normalized fixtures scheduled on a calendar
// date (YYYY-MM-DD), without odds attached.
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]domain.Fixture, error) {
	params := url.Values{}
	params.Set("date", date)
	if c.timezone != "" {
		params.Set("timezone", c.timezone)
	}

	body, err := c.doGet(ctx, "/fixtures", params)
	if err != nil {
		return nil, fmt.Errorf("ingest: fixtures for %s: %w", date, err)
	}

	var env apiFixtureEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("ingest: decode fixtures for %s: %w", date, err)
	}

	fixtures := make([]domain.Fixture, 0, len(env.Response))
	for i := range env.Response {
		fixtures = append(fixtures, normalizeFixture(&env.Response[i]))
	}
	return fixtures, nil
}

// OddsByDate returns the normalized odds bundles keyed by fixture ID for a
// calendar date. Fixtures without any usable market are absent from the
// map.
func (c *Client) OddsByDate(ctx context.Context, date string) (map[int64]*domain.MarketOdds, error) {
	params := url.Values{}
	params.Set("date", date)
	if c.timezone != "" {
		params.Set("timezone", c.timezone)
	}

	body, err := c.doGet(ctx, "/odds", params)
	if err != nil {
		return nil, fmt.Errorf("ingest: odds for %s: %w", date, err)
	}

	var env apiOddsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("ingest: decode odds for %s: %w", date, err)
	}

	odds := make(map[int64]*domain.MarketOdds, len(env.Response))
	for i := range env.Response {
		entry := &env.Response[i]
		if entry.Fixture.ID == 0 {
			continue
		}
		if bundle := normalizeOdds(entry); bundle != nil {
			odds[entry.Fixture.ID] = bundle
		}
	}
	return odds, nil
}

// ResultsByDate returns final scores keyed by fixture ID for fixtures that
// have finished on the given date.
func (c *Client) ResultsByDate(ctx context.Context, date string) (map[int64]domain.FinalScore, error) {
	params := url.Values{}
	params.Set("date", date)
	if c.timezone != "" {
		params.Set("timezone", c.timezone)
	}

	body, err := c.doGet(ctx, "/fixtures", params)
	if err != nil {
		return nil, fmt.Errorf("ingest: results for %s: %w", date, err)
	}

	var env apiFixtureEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("ingest: decode results for %s: %w", date, err)
	}

	scores := make(map[int64]domain.FinalScore)
	for i := range env.Response {
		entry := &env.Response[i]
		if !finishedStatus[entry.Fixture.Status.Short] {
			continue
		}
		if entry.Goals.Home == nil || entry.Goals.Away == nil {
			continue
		}
		scores[entry.Fixture.ID] = domain.FinalScore{
			Home: *entry.Goals.Home,
			Away: *entry.Goals.Away,
		}
	}
	return scores, nil
}

// TeamStatistics returns the recent-form summary for one team in a league
// season.
func (c *Client) TeamStatistics(ctx context.Context, teamID, leagueID int64, season int) (TeamForm, error) {
	params := url.Values{}
	params.Set("team", strconv.FormatInt(teamID, 10))
	params.Set("league", strconv.FormatInt(leagueID, 10))
	params.Set("season", strconv.Itoa(season))

	body, err := c.doGet(ctx, "/teams/statistics", params)
	if err != nil {
		return TeamForm{}, fmt.Errorf("ingest: team statistics %d: %w", teamID, err)
	}

	var env apiTeamStatsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return TeamForm{}, fmt.Errorf("ingest: decode team statistics %d: %w", teamID, err)
	}

	goalsAvg, _ := env.Response.Goals.For.Average.Total.Float64()
	return TeamForm{
		Form:        env.Response.Form,
		GoalsForAvg: goalsAvg,
	}, nil
}

// finishedStatus holds the provider status codes that mark a settled
// fixture.
var finishedStatus = map[string]bool{
	"FT":  true,
	"AET": true,
	"PEN": true,
}

// doGet issues a GET with the API key header, honoring the rate limiter
// and retrying failed requests with linearly increasing delay.
func (c *Client) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(attempt)
			c.logger.WarnContext(ctx, "request failed, retrying",
				slog.String("path", path),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.String("error", lastErr.Error()),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.attempt(ctx, path, params)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
