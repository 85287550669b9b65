package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	path, err := s.Upload(context.Background(), strings.NewReader("jpeg bytes"), "images/u1/a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("images", "u1", "a.jpg"), path)

	content, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	url, err := s.GetURL(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/images/u1/a.jpg", url)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../escape.jpg", "image/jpeg")
	assert.Error(t, err)

	_, err = s.GetURL(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
