package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

type notificationFeed struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (f *notificationFeed) add(id int64, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, domain.Notification{ID: id, UserID: 1, Type: "BUG_CREATED", Message: message})
}

func (f *notificationFeed) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications/user/1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.items)
	}
}

func newTestWatcher(t *testing.T, feed *notificationFeed, onNew func([]domain.Notification)) *NotificationWatcher {
	t.Helper()
	srv := httptest.NewServer(feed.handler(t))
	t.Cleanup(srv.Close)

	store := NewMemoryTokenStore()
	_ = store.Save(Identity{Username: "alice", Role: domain.RoleAdmin, AccessToken: "tok"})
	gateway := NewGateway(srv.URL, store, srv.Client(), zerolog.Nop())
	return NewNotificationWatcher(gateway, 1, onNew, zerolog.Nop())
}

func TestNotificationWatcher_FirstPollOnlyPrimes(t *testing.T) {
	feed := &notificationFeed{}
	feed.add(1, "existing")

	var fired [][]domain.Notification
	w := newTestWatcher(t, feed, func(items []domain.Notification) {
		fired = append(fired, items)
	})

	w.pollOnce()
	if len(fired) != 0 {
		t.Fatalf("baseline poll must not fire, got %d callbacks", len(fired))
	}
}

func TestNotificationWatcher_ReportsOnlyNewItems(t *testing.T) {
	feed := &notificationFeed{}
	feed.add(1, "existing")

	var fired [][]domain.Notification
	w := newTestWatcher(t, feed, func(items []domain.Notification) {
		fired = append(fired, items)
	})

	w.pollOnce() // baseline
	feed.add(2, "fresh one")
	feed.add(3, "fresh two")
	w.pollOnce()

	if len(fired) != 1 {
		t.Fatalf("expected one callback, got %d", len(fired))
	}
	if len(fired[0]) != 2 || fired[0][0].ID != 2 || fired[0][1].ID != 3 {
		t.Fatalf("unexpected new items: %+v", fired[0])
	}

	// A third poll with no change stays silent.
	w.pollOnce()
	if len(fired) != 1 {
		t.Fatalf("unchanged feed must not fire, got %d callbacks", len(fired))
	}
}

func TestNotificationWatcher_StopPreventsCallbacks(t *testing.T) {
	feed := &notificationFeed{}
	var fired int
	w := newTestWatcher(t, feed, func([]domain.Notification) { fired++ })

	if err := w.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	w.Stop()

	feed.add(1, "after stop")
	w.poll() // a stray tick after Stop is a no-op
	if fired != 0 {
		t.Fatalf("callback fired after Stop")
	}
}

func TestNotificationWatcher_StopWithoutStart(t *testing.T) {
	w := newTestWatcher(t, &notificationFeed{}, nil)
	w.Stop() // must not panic or block
}

func TestNotificationWatcher_RestartKeepsBaseline(t *testing.T) {
	feed := &notificationFeed{}
	feed.add(1, "existing")

	var fired [][]domain.Notification
	w := newTestWatcher(t, feed, func(items []domain.Notification) {
		fired = append(fired, items)
	})

	w.pollOnce() // baseline
	if err := w.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	w.Stop()

	feed.add(2, "fresh")
	w.pollOnce()

	if len(fired) != 1 || len(fired[0]) != 1 || fired[0][0].ID != 2 {
		t.Fatalf("expected only the fresh item after restart, got %+v", fired)
	}
}
