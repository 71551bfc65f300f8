package maintenances

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/maintenances/models"
)

type MaintenanceService interface {
	List(ctx context.Context, actor domain.Actor, req *models.ListMaintenancesRequest) (*models.MaintenanceListResponse, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*models.MaintenanceResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *models.CreateMaintenanceRequest) (*models.MaintenanceResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateMaintenanceRequest) (*models.MaintenanceResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
