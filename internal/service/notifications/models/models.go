package models

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type ListNotificationsRequest struct {
	UnreadOnly bool
	Page       domain.Page
}

// SendNotificationRequest is an administrator's message to a user
type SendNotificationRequest struct {
	UserID  int64
	Type    string
	Title   string
	Message string
}

type NotificationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse
	Page          int
	Limit         int
	Total         int
}

func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func FromDomainNotificationList(list []*domain.Notification, page domain.Page, total int) *NotificationListResponse {
	page = page.Normalize()
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(list)),
		Page:          page.Page,
		Limit:         page.Limit,
		Total:         total,
	}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, FromDomainNotification(n))
	}
	return resp
}
