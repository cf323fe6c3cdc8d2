package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	codeTTL    = 10 * time.Minute
	codePrefix = "email:code:register:"
)

var ErrCodeNotFound = errors.New("verification code not found or expired")

// SetRegisterCode stores a registration verification code with a TTL.
func SetRegisterCode(ctx context.Context, email, code string) error {
	if !Enabled() {
		return ErrNotConfigured
	}
	return Client.Set(ctx, codePrefix+email, code, codeTTL).Err()
}

// GetRegisterCode fetches the pending code for an email address.
func GetRegisterCode(ctx context.Context, email string) (string, error) {
	if !Enabled() {
		return "", ErrNotConfigured
	}
	val, err := Client.Get(ctx, codePrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error reading verification code: %w", err)
	}
	return val, nil
}

// DeleteRegisterCode removes a consumed code. Idempotent.
func DeleteRegisterCode(ctx context.Context, email string) error {
	if !Enabled() {
		return ErrNotConfigured
	}
	return Client.Del(ctx, codePrefix+email).Err()
}
