package ports

import (
	"context"
	"io"
)

// ImageStorage uploads listing images to remote object storage and returns
// publicly addressable URIs. Only the URIs are persisted.
type ImageStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, uri string) error
}
