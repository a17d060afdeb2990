package ports

import (
	"context"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id int64) (*domain.Notification, error)
	FindAll(ctx context.Context) ([]*domain.Notification, error)
	FindByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
	Delete(ctx context.Context, id int64) error
}

// NotificationInput carries the fields for creating or updating a notification.
type NotificationInput struct {
	UserID  int64
	Type    string
	Message string
	Read    bool
}

// NotificationService defines use-case operations for notifications.
type NotificationService interface {
	AddNotification(ctx context.Context, input NotificationInput) (*domain.Notification, error)
	GetNotification(ctx context.Context, id int64) (*domain.Notification, error)
	GetAllNotifications(ctx context.Context) ([]*domain.Notification, error)
	GetNotificationsByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	UpdateNotification(ctx context.Context, id int64, input NotificationInput) (*domain.Notification, error)
	DeleteNotification(ctx context.Context, id int64) error
}

// NotificationDispatch is the async delivery job routed through the queue
// dispatcher. Jobs for the same user are processed in order.
type NotificationDispatch struct {
	UserID  int64
	Type    string
	Message string
}

// NotificationDispatcher accepts delivery jobs for background processing.
type NotificationDispatcher interface {
	Enqueue(job NotificationDispatch)
}
