package users

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context, actor domain.Actor, req *models.ListUsersRequest) (*models.UserListResponse, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*models.UserResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *models.CreateUserRequest) (*models.UserResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.AdminUpdateUserRequest) (*models.UserResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
