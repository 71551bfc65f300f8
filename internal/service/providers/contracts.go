package providers

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error)
}

type ServiceRepository interface {
	List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.Service, int, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
