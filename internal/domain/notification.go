package domain

import "time"

// NotificationType groups notifications by origin
type NotificationType string

const (
	NotificationBookingCreated NotificationType = "booking_created"
	NotificationBookingStatus  NotificationType = "booking_status"
	NotificationPayment        NotificationType = "payment"
	NotificationMaintenance    NotificationType = "maintenance"
	NotificationSystem         NotificationType = "system"
)

type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type NotificationFilter struct {
	UserID     int64
	UnreadOnly bool
	Page       Page
}
