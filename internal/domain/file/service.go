package file

import (
	"context"
	"io"
)

// FileService hosts images the app references by URL in later actions.
type FileService interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (UploadResponse, error)
}
