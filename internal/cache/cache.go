package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

var ErrNotConfigured = errors.New("redis not configured")

// Init connects the Redis client and pings it once.
func Init(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		// Leave the cache disabled rather than half-configured: callers gate
		// on Enabled() and must not see a client that cannot talk to Redis.
		Client.Close()
		Client = nil
		return err
	}
	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}

func Enabled() bool {
	return Client != nil
}
