package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://res.cloudinary.com/agro/image/upload/v1712/agroboost/services/12/abc.jpg", "agroboost/services/12/abc", true},
		{"https://res.cloudinary.com/agro/image/upload/agroboost/x.png", "agroboost/x", true},
		{"https://example.com/uploads/x.png", "", false},
		{"https://res.cloudinary.com/agro/image/upload/", "", false},
	}

	for _, tt := range tests {
		got, ok := publicIDFromURL(tt.url)
		assert.Equal(t, tt.wantOK, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestLocalStore_UploadDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "12", "photo.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/12/photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "12", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, "12", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, store.Delete(context.Background(), "https://elsewhere/x.jpg"), ErrForeign)
}

func TestLocalStore_UploadStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "../../etc", "../passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/passwd", url)

	_, err = os.Stat(filepath.Join(dir, "etc", "passwd"))
	assert.NoError(t, err)
}
