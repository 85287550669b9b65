package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/file"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt/jwttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) Upload(ctx context.Context, r io.Reader, path string, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[path] = b
	return path, nil
}

func (m *memoryStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "https://cdn.example.com/" + path, nil
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	store := &memoryStorage{}
	svc := NewFileService(store)
	ctx := jwttest.ContextWithUserID(context.Background(), "auth|42")

	resp, err := svc.UploadImage(ctx, bytes.NewReader(pngImage(t, 64, 48)), "photo.PNG")
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", resp.ContentType)
	assert.True(t, strings.HasPrefix(resp.Path, "images/auth_42/"))
	assert.True(t, strings.HasSuffix(resp.Path, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+resp.Path, resp.URL)

	stored := store.files[resp.Path]
	require.NotEmpty(t, stored)
	assert.Equal(t, len(stored), resp.Size)
	_, format, err := image.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestUploadImage_Rejects(t *testing.T) {
	ctx := jwttest.ContextWithUserID(context.Background(), "auth-1")
	svc := NewFileService(&memoryStorage{})

	_, err := svc.UploadImage(ctx, strings.NewReader("%PDF"), "payslip.pdf")
	assert.ErrorIs(t, err, file.ErrInvalidFileType)

	_, err = svc.UploadImage(ctx, strings.NewReader("not an image"), "photo.jpg")
	assert.ErrorIs(t, err, file.ErrInvalidFileType)

	_, err = svc.UploadImage(ctx, strings.NewReader(""), "photo.jpg")
	assert.ErrorIs(t, err, file.ErrEmptyFile)

	_, err = svc.UploadImage(ctx, bytes.NewReader(make([]byte, MaxUploadSize+1)), "photo.jpg")
	assert.ErrorIs(t, err, file.ErrFileTooLarge)

	_, err = svc.UploadImage(context.Background(), strings.NewReader("x"), "photo.jpg")
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}

func TestCompressImage_KeepsJPEGInRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	src := buf.Bytes()

	out, err := compressImage(src, len(src)+1, len(src)-1)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestResizeImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 800))
	dst := resizeImage(src, 600, 400)
	assert.Equal(t, image.Rect(0, 0, 600, 400), dst.Bounds())
}
