package archive

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("archive not found")

type Store interface {
	Create(ctx context.Context, text string, expiry time.Duration) (string, error)
	// Get returns ErrNotFound for unknown or expired archives.
	Get(ctx context.Context, id string) (string, error)
}

// Purger is implemented by stores that need expired rows removed out of band.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// URL returns the public viewer address of an archive.
func URL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/archives/" + id
}
