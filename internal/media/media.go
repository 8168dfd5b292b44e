// Package media stores uploaded images and resolves their public URLs.
package media

import (
	"context"
	"io"
	"strings"

	"github.com/horsh321/teem-server/internal/config"

	"github.com/rs/zerolog"
)

// Store persists media objects under a key and resolves stable URLs for them.
type Store interface {
	// Put stores body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// URL returns the public URL for key without checking that it exists.
	URL(key string) string
}

// New returns the store selected by cfg.Backend. If the S3 store cannot be
// initialised the local store is used instead.
func New(ctx context.Context, cfg config.MediaConfig, logger zerolog.Logger) Store {
	local := NewLocalStore(cfg.LocalDir, cfg.BaseURL, logger)

	if cfg.Backend != "s3" {
		logger.Info().Str("dir", cfg.LocalDir).Msg("using local media store")
		return local
	}

	s3Store, err := NewS3Store(ctx, cfg.Bucket, cfg.Region, cfg.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 media store, falling back to local file system")
		return local
	}
	return s3Store
}

// cleanKey strips leading slashes and rejects keys that escape the store root.
func cleanKey(key string) (string, bool) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", false
		}
	}
	return key, true
}

// DefaultAvatarURL returns the URL of the avatar assigned to accounts without a photo.
func DefaultAvatarURL(store Store, key string) string {
	if key == "" {
		key = "avatars/default.png"
	}
	return store.URL(key)
}
