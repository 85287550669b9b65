package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/file"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/storage"
	"github.com/google/uuid"
)

const (
	MaxUploadSize = 10 << 20

	maxImageSize = 400 * 1024
	minImageSize = 50 * 1024
)

var allowedExts = []string{".jpg", ".jpeg", ".png"}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) file.FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadImage compresses a camera photo to JPEG and stores it under the
// caller's directory, returning its public URL.
func (s *fileServiceImpl) UploadImage(ctx context.Context, r io.Reader, filename string) (file.UploadResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return file.UploadResponse{}, fmt.Errorf("%w: %v", user.ErrUnauthenticated, err)
	}

	if !isAllowedExt(filename) {
		return file.UploadResponse{}, file.ErrInvalidFileType
	}

	// Read one byte past the limit to detect oversized bodies.
	buffer, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return file.UploadResponse{}, fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) == 0 {
		return file.UploadResponse{}, file.ErrEmptyFile
	}
	if len(buffer) > MaxUploadSize {
		return file.UploadResponse{}, file.ErrFileTooLarge
	}

	compressed, err := compressImage(buffer, maxImageSize, minImageSize)
	if err != nil {
		return file.UploadResponse{}, fmt.Errorf("%w: %v", file.ErrInvalidFileType, err)
	}

	// Always stored as JPEG after compression
	path := filepath.Join("images", sanitize(userID), uuid.New().String()+".jpg")

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return file.UploadResponse{}, fmt.Errorf("failed to upload image: %w", err)
	}

	url, err := s.storage.GetURL(ctx, uploadedPath)
	if err != nil {
		return file.UploadResponse{}, fmt.Errorf("failed to build image url: %w", err)
	}

	slog.Debug("image uploaded", "user_id", userID, "path", uploadedPath, "original_size", len(buffer), "size", len(compressed))

	return file.UploadResponse{
		URL:         url,
		Path:        filepath.ToSlash(uploadedPath),
		ContentType: "image/jpeg",
		Size:        len(compressed),
	}, nil
}

func isAllowedExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// sanitize keeps user ids usable as a single path segment.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
