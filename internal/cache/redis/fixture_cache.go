package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// Day batches are stable once odds are published, so a long TTL is safe;
// the key rolls over with the date anyway.
const fixtureDayTTL = 6 * time.Hour

// FixtureCache implements domain.FixtureCache using one JSON-serialized
// string value per calendar date.
//
// Key schema:
//
//	fixtures:day:{YYYY-MM-DD} - JSON array of the merged fixture batch
type FixtureCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFixtureCache creates a FixtureCache backed by the given Client. A
// zero ttl falls back to the default.
func NewFixtureCache(c *Client, ttl time.Duration) *FixtureCache {
	if ttl == 0 {
		ttl = fixtureDayTTL
	}
	return &FixtureCache{rdb: c.Underlying(), ttl: ttl}
}

func fixtureDayKey(date string) string { return "fixtures:day:" + date }

// SetDay stores the odds-joined fixture batch for one date.
func (fc *FixtureCache) SetDay(ctx context.Context, date string, fixtures []domain.Fixture) error {
	data, err := json.Marshal(fixtures)
	if err != nil {
		return fmt.Errorf("redis: marshal fixtures for %s: %w", date, err)
	}

	if err := fc.rdb.Set(ctx, fixtureDayKey(date), data, fc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set fixtures for %s: %w", date, err)
	}
	return nil
}

// GetDay retrieves the fixture batch for one date.
// It returns domain.ErrNotFound when the date has not been cached.
func (fc *FixtureCache) GetDay(ctx context.Context, date string) ([]domain.Fixture, error) {
	data, err := fc.rdb.Get(ctx, fixtureDayKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get fixtures for %s: %w", date, err)
	}

	var fixtures []domain.Fixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("redis: unmarshal fixtures for %s: %w", date, err)
	}
	return fixtures, nil
}

// Compile-time interface check.
var _ domain.FixtureCache = (*FixtureCache)(nil)
