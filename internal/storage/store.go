package storage

import (
	"context"
	"io"
	"net/url"
	"time"
)

// ObjectStore is the blob backend consumed by the attachment service.
// Kept narrow so tests can swap in a mock.
type ObjectStore interface {
	Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) error
	Remove(ctx context.Context, objectName string) error
	// PresignedURL issues a time-limited GET URL. When downloadName is
	// non-empty the URL forces a Content-Disposition attachment with
	// that filename.
	PresignedURL(ctx context.Context, objectName string, ttl time.Duration, downloadName string) (*url.URL, error)
}
