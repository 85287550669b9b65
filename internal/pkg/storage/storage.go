package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload stores a file and returns its cleaned relative path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// GetURL returns the public URL of a stored path
	GetURL(ctx context.Context, path string) (string, error)
}
