package notifications

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Pusher delivers a message to a Telegram chat
type Pusher interface {
	Notify(ctx context.Context, chatID int64, title, message string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
