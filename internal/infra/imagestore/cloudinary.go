package imagestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads service images to Cloudinary
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("imagestore: init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Upload sends one image and returns its HTTPS URL
func (s *CloudinaryStore) Upload(ctx context.Context, subfolder, filename string, file io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   path.Join(s.folder, subfolder),
		PublicID: strings.TrimSuffix(filename, path.Ext(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: cloudinary: %v", ErrUpload, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("%w: cloudinary: %s", ErrUpload, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: cloudinary returned no url", ErrUpload)
	}
	return result.SecureURL, nil
}

// Delete removes the image behind a URL previously returned by Upload
func (s *CloudinaryStore) Delete(ctx context.Context, url string) error {
	publicID, ok := publicIDFromURL(url)
	if !ok {
		return ErrForeign
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("%w: cloudinary: %v", ErrDelete, err)
	}
	return nil
}

// publicIDFromURL extracts "folder/name" from
// https://res.cloudinary.com/<cloud>/image/upload/v123/folder/name.jpg
func publicIDFromURL(url string) (string, bool) {
	const marker = "/upload/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	rest := url[idx+len(marker):]

	if slash := strings.Index(rest, "/"); slash > 1 && rest[0] == 'v' && isDigits(rest[1:slash]) {
		rest = rest[slash+1:]
	}
	rest = strings.TrimSuffix(rest, path.Ext(rest))
	if rest == "" {
		return "", false
	}
	return rest, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
