package port

import (
	"context"
	"io"
)

// FileStore persists profile attachments in object storage.
type FileStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}
