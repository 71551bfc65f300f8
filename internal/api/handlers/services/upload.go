package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/catalog/models"
)

const (
	imagesField     = "images"
	maxImageBytes   = 5 << 20
	maxUploadMemory = 8 << 20
)

var (
	errNoImages       = errors.New("no file in the images field")
	errTooManyImages  = errors.New("too many files in one upload")
	errImageTooLarge  = errors.New("image exceeds the size limit")
	errNotAnImageType = errors.New("file is not an image")
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// readImages opens the files of the multipart "images" field. The caller closes them.
func readImages(w http.ResponseWriter, r *http.Request) ([]models.ImageFile, []multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxServiceImages*maxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, err
	}

	headers := r.MultipartForm.File[imagesField]
	if len(headers) == 0 {
		return nil, nil, errNoImages
	}
	if len(headers) > domain.MaxServiceImages {
		return nil, nil, errTooManyImages
	}

	images := make([]models.ImageFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxImageBytes {
			closeAll(opened)
			return nil, nil, fmt.Errorf("%w: %s", errImageTooLarge, header.Filename)
		}

		file, err := header.Open()
		if err != nil {
			closeAll(opened)
			return nil, nil, err
		}
		opened = append(opened, file)

		contentType, err := sniffContentType(file)
		if err != nil {
			closeAll(opened)
			return nil, nil, err
		}
		if _, ok := allowedImageTypes[contentType]; !ok {
			closeAll(opened)
			return nil, nil, fmt.Errorf("%w: %s is %s", errNotAnImageType, header.Filename, contentType)
		}

		images = append(images, models.ImageFile{
			Filename:    header.Filename,
			ContentType: contentType,
			Content:     file,
		})
	}
	return images, opened, nil
}

// sniffContentType trusts the bytes, not the client's header
func sniffContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && n == 0 {
		return "", err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
