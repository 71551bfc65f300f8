package notifications

import (
	"context"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/notifications/models"
)

type NotificationService interface {
	Send(ctx context.Context, actor domain.Actor, req *models.SendNotificationRequest) (*models.NotificationResponse, error)
	List(ctx context.Context, actor domain.Actor, req *models.ListNotificationsRequest) (*models.NotificationListResponse, error)
	MarkRead(ctx context.Context, actor domain.Actor, id int64) error
	MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
