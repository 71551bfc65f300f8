package catalog

import (
	"context"
	"io"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, int, error)
	Update(ctx context.Context, s *domain.Service) error
	SetImages(ctx context.Context, id int64, images []string) error
	Delete(ctx context.Context, id int64) error
}

// ImageStore persists uploaded pictures and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, subfolder, filename string, file io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
