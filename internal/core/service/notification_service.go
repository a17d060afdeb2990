package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type NotificationService struct {
	notifications ports.NotificationRepository
	users         ports.UserRepository
}

func NewNotificationService(notifications ports.NotificationRepository, users ports.UserRepository) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

func (s *NotificationService) AddNotification(ctx context.Context, input ports.NotificationInput) (*domain.Notification, error) {
	if strings.TrimSpace(input.Type) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, fmt.Errorf("%w: type and message are required", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	return s.notifications.Create(ctx, &domain.Notification{
		UserID:      input.UserID,
		Type:        input.Type,
		Message:     input.Message,
		Read:        input.Read,
		CreatedDate: time.Now().UTC(),
	})
}

func (s *NotificationService) GetNotification(ctx context.Context, id int64) (*domain.Notification, error) {
	return s.notifications.FindByID(ctx, id)
}

func (s *NotificationService) GetAllNotifications(ctx context.Context) ([]*domain.Notification, error) {
	return s.notifications.FindAll(ctx)
}

func (s *NotificationService) GetNotificationsByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	return s.notifications.FindByUser(ctx, userID)
}

func (s *NotificationService) UpdateNotification(ctx context.Context, id int64, input ports.NotificationInput) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Type) != "" {
		n.Type = input.Type
	}
	if strings.TrimSpace(input.Message) != "" {
		n.Message = input.Message
	}
	n.Read = input.Read

	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id int64) error {
	if _, err := s.notifications.FindByID(ctx, id); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}
