package document

import (
	"context"
	"io"
	"time"
)

// BucketInfo describes one bucket in the object store (diagnostics).
type BucketInfo struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

// ObjectStore port (interface for blob storage of uploaded documents)
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Buckets(ctx context.Context) ([]BucketInfo, error)
	Check(ctx context.Context) error
}
