package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rei-collective/community/backend/internal/utils"
)

// LocalStore keeps uploads on the server's disk under root, served publicly
// under baseURL (the server mounts a static route for it).
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload root: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Upload(bucket, path string, data []byte, contentType string) (string, error) {
	full := filepath.Join(s.root, bucket, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", utils.NewAppError(utils.ErrUpload, "Failed to prepare upload directory", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", utils.NewAppError(utils.ErrUpload, "Failed to store upload", err)
	}
	return path, nil
}

func (s *LocalStore) PublicURL(bucket, path string) string {
	return s.baseURL + "/" + bucket + "/" + path
}

func (s *LocalStore) Remove(bucket string, paths []string) error {
	for _, p := range paths {
		full := filepath.Join(s.root, bucket, filepath.FromSlash(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return utils.NewAppError(utils.ErrUpload, "Failed to remove upload", err)
		}
	}
	return nil
}

// Root exposes the on-disk directory so the server can mount it as a static route.
func (s *LocalStore) Root() string {
	return s.root
}
