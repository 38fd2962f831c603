package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginWindow          = time.Minute
	defaultLoginAttempts = 3
)

// LoginLimiter throttles login attempts per identifier using a fixed window
// counter backed by Redis.
// Key format: login_attempts:<identifier>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive maxAttempts falls back to the default of 3 per minute.
func NewLoginLimiter(client *redis.Client, maxAttempts int) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultLoginAttempts
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts}
}

// Allow records one attempt for the identifier and reports whether it is
// still within the window budget. The window starts on the first attempt.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := l.key(identifier)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, loginWindow).Err(); err != nil {
			return false, fmt.Errorf("login limiter: %w", err)
		}
	}
	return n <= int64(l.maxAttempts), nil
}

func (l *LoginLimiter) key(identifier string) string {
	return fmt.Sprintf("login_attempts:%s", identifier)
}
