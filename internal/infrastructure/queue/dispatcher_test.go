package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

type recordingNotificationService struct {
	mu        sync.Mutex
	delivered []ports.NotificationInput
	done      chan struct{}
	expect    int
}

func newRecordingService(expect int) *recordingNotificationService {
	return &recordingNotificationService{done: make(chan struct{}), expect: expect}
}

func (s *recordingNotificationService) AddNotification(_ context.Context, input ports.NotificationInput) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, input)
	if len(s.delivered) == s.expect {
		close(s.done)
	}
	return &domain.Notification{UserID: input.UserID, Type: input.Type, Message: input.Message}, nil
}

func (s *recordingNotificationService) GetNotification(context.Context, int64) (*domain.Notification, error) {
	return nil, domain.ErrNotificationNotFound
}

func (s *recordingNotificationService) GetAllNotifications(context.Context) ([]*domain.Notification, error) {
	return nil, nil
}

func (s *recordingNotificationService) GetNotificationsByUser(context.Context, int64) ([]*domain.Notification, error) {
	return nil, nil
}

func (s *recordingNotificationService) UpdateNotification(context.Context, int64, ports.NotificationInput) (*domain.Notification, error) {
	return nil, domain.ErrNotificationNotFound
}

func (s *recordingNotificationService) DeleteNotification(context.Context, int64) error {
	return nil
}

func TestDispatcher_DeliversInOrderPerUser(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.NotificationDispatch{UserID: 7, Type: "BUG_CREATED", Message: "first"})
	d.Enqueue(ports.NotificationDispatch{UserID: 7, Type: "BUG_CREATED", Message: "second"})
	d.Enqueue(ports.NotificationDispatch{UserID: 7, Type: "BUG_CREATED", Message: "third"})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("jobs not delivered in time")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	want := []string{"first", "second", "third"}
	for i, msg := range want {
		if svc.delivered[i].Message != msg {
			t.Fatalf("delivery %d out of order: got %q, want %q", i, svc.delivered[i].Message, msg)
		}
		if svc.delivered[i].UserID != 7 {
			t.Fatalf("delivery %d addressed to %d, want 7", i, svc.delivered[i].UserID)
		}
	}
}

func TestDispatcher_ShardIsStablePerUser(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	for userID := int64(-5); userID < 20; userID++ {
		a := d.shardIndex(userID)
		b := d.shardIndex(userID)
		if a != b {
			t.Fatalf("shard for user %d not stable: %d vs %d", userID, a, b)
		}
		if a < 0 || a >= 4 {
			t.Fatalf("shard %d for user %d out of range", a, userID)
		}
	}
}
