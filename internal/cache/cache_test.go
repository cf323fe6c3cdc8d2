package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitFailureLeavesCacheDisabled(t *testing.T) {
	// Port 1 is never a Redis server; the ping must fail and the package must
	// report itself disabled so callers fall back to the uncached paths.
	err := Init("127.0.0.1:1", "", 0)
	assert.Error(t, err)
	assert.False(t, Enabled())

	// Helpers short-circuit instead of dialing a dead client
	_, err = GetFeed(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, SetFeed(context.Background(), "{}"), ErrNotConfigured)
	assert.ErrorIs(t, SetRegisterCode(context.Background(), "a@b.com", "123456"), ErrNotConfigured)
}

func TestCloseWithoutInit(t *testing.T) {
	Client = nil
	assert.NoError(t, Close())
	assert.False(t, Enabled())
}
