package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// unlockLua deletes a lock key only if its value matches the caller's
// unique token, so one holder cannot release another holder's lock.
const unlockLua = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`

// RunLock implements domain.RunLock using Redis SETNX with a TTL and a
// Lua-based conditional unlock. It keeps a scheduled and a manual run for
// the same date from generating tickets concurrently.
type RunLock struct {
	rdb      *redis.Client
	unlockSc *redis.Script
}

// NewRunLock creates a RunLock backed by the given Client.
func NewRunLock(c *Client) *RunLock {
	return &RunLock{
		rdb:      c.Underlying(),
		unlockSc: redis.NewScript(unlockLua),
	}
}

func runLockKey(scope string) string {
	return "runlock:" + scope
}

// Acquire attempts to obtain the run lock for a scope with the given TTL.
// On success it returns a release function that is safe to call more than
// once. It returns domain.ErrLockHeld when another run owns the scope.
func (rl *RunLock) Acquire(ctx context.Context, scope string, ttl time.Duration) (func(), error) {
	token := uuid.New().String()
	key := runLockKey(scope)

	ok, err := rl.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquire run lock %s: %w", scope, err)
	}
	if !ok {
		return nil, domain.ErrLockHeld
	}

	released := false
	release := func() {
		if released {
			return
		}
		released = true

		// Background context so release works even when the run's context
		// is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = rl.unlockSc.Run(releaseCtx, rl.rdb, []string{key}, token).Err()
	}

	return release, nil
}

// Compile-time interface check.
var _ domain.RunLock = (*RunLock)(nil)
