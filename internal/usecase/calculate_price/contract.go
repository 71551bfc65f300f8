package calculate_price

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
