package availability

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type BlockRepository interface {
	Create(ctx context.Context, b *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error)
	Find(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityBlock, error)
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
