package maintenances

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error)
	GetByID(ctx context.Context, id int64) (*domain.Maintenance, error)
	List(ctx context.Context, filter domain.MaintenanceFilter) ([]*domain.Maintenance, int, error)
	Update(ctx context.Context, m *domain.Maintenance) error
	Delete(ctx context.Context, id int64) error
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
