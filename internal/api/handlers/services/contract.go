package services

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error)
	Get(ctx context.Context, id int64) (*models.ServiceResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	AddImages(ctx context.Context, actor domain.Actor, id int64, files []models.ImageFile) (*models.ServiceResponse, error)
	RemoveImage(ctx context.Context, actor domain.Actor, id int64, url string) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
