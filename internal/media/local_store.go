package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LocalStore stores media objects on the local file system.
type LocalStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalStore creates a store rooted at dir whose objects are served under baseURL.
func NewLocalStore(dir, baseURL string, logger zerolog.Logger) *LocalStore {
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "local-media-store").Logger(),
	}
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	clean, ok := cleanKey(key)
	if !ok {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file %s: %w", path, err)
	}
	defer file.Close()

	n, err := io.Copy(file, body)
	if err != nil {
		return "", fmt.Errorf("failed to write media file %s: %w", path, err)
	}

	s.logger.Debug().
		Str("key", clean).
		Str("content_type", contentType).
		Int64("bytes", n).
		Msg("media object stored")

	return s.URL(clean), nil
}

func (s *LocalStore) URL(key string) string {
	key, _ = cleanKey(key)
	return s.baseURL + "/" + key
}

// Handler serves stored objects. Mount it under the path of baseURL.
func (s *LocalStore) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}
