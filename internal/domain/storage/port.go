package storage

import (
	"context"
	"io"
)

// Object is what the store reports back after an upload.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// ObjectStore port for user uploads.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Check(ctx context.Context) error
}
