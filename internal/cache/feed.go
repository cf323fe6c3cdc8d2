package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	feedKey = "forum:feed"
	feedTTL = 2 * time.Minute
)

// GetFeed returns the cached hot-feed JSON, or ("", nil) on a miss.
func GetFeed(ctx context.Context) (string, error) {
	if !Enabled() {
		return "", ErrNotConfigured
	}
	val, err := Client.Get(ctx, feedKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func SetFeed(ctx context.Context, payload string) error {
	if !Enabled() {
		return ErrNotConfigured
	}
	return Client.Set(ctx, feedKey, payload, feedTTL).Err()
}

// InvalidateFeed drops the cached feed. Called after any mutation that changes
// what the feed would show (votes, new posts, comment counts, pins).
func InvalidateFeed(ctx context.Context) error {
	if !Enabled() {
		return ErrNotConfigured
	}
	return Client.Del(ctx, feedKey).Err()
}
