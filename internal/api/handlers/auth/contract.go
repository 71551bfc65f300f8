package auth

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	VerifyOTP(ctx context.Context, email, code string) (*models.AuthResponse, error)
	ResendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Logout(ctx context.Context, tokenID string) error

	GetProfile(ctx context.Context, actor domain.Actor) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, req *models.UpdateProfileRequest) (*models.UserResponse, error)
	ChangePassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
