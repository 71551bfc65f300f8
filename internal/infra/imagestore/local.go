package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps images on disk and serves them from baseURL.
// Used when no Cloudinary credentials are configured.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore: create %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory to expose under baseURL
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Upload(ctx context.Context, subfolder, filename string, file io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	subfolder = filepath.Base(filepath.Clean("/" + subfolder))
	filename = filepath.Base(filename)

	target := filepath.Join(s.dir, subfolder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir: %v", ErrUpload, err)
	}

	f, err := os.Create(filepath.Join(target, filename))
	if err != nil {
		return "", fmt.Errorf("%w: create: %v", ErrUpload, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, file); err != nil {
		return "", fmt.Errorf("%w: write: %v", ErrUpload, err)
	}
	return s.baseURL + "/" + subfolder + "/" + filename, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return ErrForeign
	}
	rel := filepath.Clean("/" + strings.TrimPrefix(url, s.baseURL+"/"))

	if err := os.Remove(filepath.Join(s.dir, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	return nil
}
