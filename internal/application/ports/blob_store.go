package ports

import (
	"context"
	"io"
)

// Blob is what the store reports back for a successful write.
type Blob struct {
	Locator string
	Size    int64
}

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Blob, error)
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
	Delete(ctx context.Context, locator string) error
}
