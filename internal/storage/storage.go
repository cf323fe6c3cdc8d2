package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Buckets used by the application.
const (
	BucketAvatars = "avatars"
	BucketForum   = "forum"
	BucketVideos  = "videos"
	BucketDeals   = "deals"
	BucketDM      = "messages"
)

// Store is the object-storage contract: upload bytes under a bucket/path,
// resolve a public URL, remove paths. The local-disk implementation below is
// the default; swapping in a hosted provider only needs this interface.
type Store interface {
	Upload(bucket, path string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
	Remove(bucket string, paths []string) error
}

// UniqueName sanitizes an uploaded filename and appends a random suffix so
// concurrent uploads of "kitchen.jpg" never collide.
func UniqueName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := b.String()
	if strings.Trim(cleaned, "_") == "" {
		// Nothing recognizable survived sanitization
		cleaned = "file"
	}

	return cleaned + "-" + uuid.NewString()[:8] + ext
}
