package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/uploads/")
	assert.NoError(t, err)

	path, err := store.Upload(BucketAvatars, "u1/pic.png", []byte("png-bytes"), "image/png")
	assert.NoError(t, err)
	assert.Equal(t, "u1/pic.png", path)

	data, err := os.ReadFile(filepath.Join(store.Root(), BucketAvatars, "u1", "pic.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	assert.Equal(t, "http://localhost:8080/uploads/avatars/u1/pic.png", store.PublicURL(BucketAvatars, path))

	assert.NoError(t, store.Remove(BucketAvatars, []string{path}))
	_, err = os.ReadFile(filepath.Join(store.Root(), BucketAvatars, "u1", "pic.png"))
	assert.True(t, os.IsNotExist(err))

	// Removing an already-removed path is not an error
	assert.NoError(t, store.Remove(BucketAvatars, []string{path}))
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("kitchen reno (final).jpg")
	b := UniqueName("kitchen reno (final).jpg")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.False(t, strings.ContainsAny(a, " ()"))

	// A base with no usable characters falls back to a generic name
	c := UniqueName("???")
	assert.True(t, strings.HasPrefix(c, "file-"))

	d := UniqueName("ファイル.png")
	assert.True(t, strings.HasPrefix(d, "file-"))
	assert.True(t, strings.HasSuffix(d, ".png"))
}
