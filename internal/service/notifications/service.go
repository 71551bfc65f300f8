package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	notificationRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/notification"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/notifications/models"
)

const (
	maxTitleLength   = 200
	maxMessageLength = 2000
)

// Service stores in-app notifications and mirrors them to Telegram
type Service struct {
	repo     NotificationRepository
	userRepo UserRepository
	pusher   Pusher
	logger   Logger
}

// NewService builds the service. pusher may be nil when no bot is configured.
func NewService(repo NotificationRepository, userRepo UserRepository, pusher Pusher, logger Logger) *Service {
	return &Service{repo: repo, userRepo: userRepo, pusher: pusher, logger: logger}
}

// Notify persists a notification for userID and pushes it to the user's Telegram chat.
// A failed push does not fail the call.
func (s *Service) Notify(ctx context.Context, userID int64, kind domain.NotificationType, title, message string) error {
	_, err := s.deliver(ctx, userID, kind, title, message)
	return err
}

// Send lets an administrator write to any user
func (s *Service) Send(ctx context.Context, actor domain.Actor, req *models.SendNotificationRequest) (*models.NotificationResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" || len(title) > maxTitleLength || len(message) > maxMessageLength {
		return nil, fmt.Errorf("%w: title and message are required", ErrInvalidInput)
	}

	kind := domain.NotificationType(req.Type)
	if kind == "" {
		kind = domain.NotificationSystem
	}

	n, err := s.deliver(ctx, req.UserID, kind, title, message)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainNotification(n)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListNotificationsRequest) (*models.NotificationListResponse, error) {
	list, total, err := s.repo.List(ctx, domain.NotificationFilter{
		UserID:     actor.UserID,
		UnreadOnly: req.UnreadOnly,
		Page:       req.Page,
	})
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainNotificationList(list, req.Page, total), nil
}

func (s *Service) MarkRead(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := s.owned(ctx, "MarkRead", actor, id); err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return s.repoError("MarkRead", id, err)
	}
	return nil
}

// MarkAllRead returns how many notifications changed
func (s *Service) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", actor.UserID, err)
		return 0, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("MarkAllRead: user=%d marked %d notifications", actor.UserID, n)
	return n, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := s.owned(ctx, "Delete", actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repoError("Delete", id, err)
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, userID int64, kind domain.NotificationType, title, message string) (*domain.Notification, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("deliver: recipient %d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("deliver: user repository error: %v", err)
		return nil, fmt.Errorf("%w: deliver - user repository: %v", ErrInternal, err)
	}

	n, err := s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		s.logger.Error("deliver: failed to store notification for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: deliver - repository error: %v", ErrInternal, err)
	}

	if s.pusher != nil && u.TelegramChatID != nil {
		if err := s.pusher.Notify(ctx, *u.TelegramChatID, title, message); err != nil {
			s.logger.Warn("deliver: telegram push failed for user=%d: %v", userID, err)
		}
	}

	s.logger.Info("deliver: notification=%d (%s) for user=%d", n.ID, kind, userID)
	return n, nil
}

func (s *Service) owned(ctx context.Context, method string, actor domain.Actor, id int64) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(method, id, err)
	}
	if n.UserID != actor.UserID && !actor.IsAdmin() {
		s.logger.Warn("%s: user=%d denied access to notification=%d", method, actor.UserID, id)
		return nil, ErrAccessDenied
	}
	return n, nil
}

func (s *Service) repoError(method string, id int64, err error) error {
	if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
		s.logger.Warn("%s: notification=%d not found", method, id)
		return ErrNotificationNotFound
	}
	s.logger.Error("%s: repository error for notification=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}
