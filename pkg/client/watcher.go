package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// pollSchedule is the fixed notification poll interval.
const pollSchedule = "@every 5s"

// NotificationWatcher polls the notifications endpoint on a fixed interval
// and reports items not seen on a previous poll. It is toggled by explicit
// Start/Stop calls and Stop guarantees no callback fires afterwards, so a
// screen can tear it down without orphaned timers mutating its state.
type NotificationWatcher struct {
	gateway *Gateway
	userID  int64
	onNew   func(items []domain.Notification)
	log     zerolog.Logger

	mu     sync.Mutex
	cron   *cron.Cron
	seen   map[int64]struct{}
	primed bool
}

// NewNotificationWatcher watches the notifications of one user. onNew is
// invoked with the batch of newly observed items; the first successful poll
// only establishes the baseline and never fires.
func NewNotificationWatcher(gateway *Gateway, userID int64, onNew func(items []domain.Notification), log zerolog.Logger) *NotificationWatcher {
	return &NotificationWatcher{
		gateway: gateway,
		userID:  userID,
		onNew:   onNew,
		log:     log,
		seen:    make(map[int64]struct{}),
	}
}

// Start begins polling every five seconds. Calling Start on a running
// watcher is a no-op.
func (w *NotificationWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(pollSchedule, w.poll); err != nil {
		return fmt.Errorf("schedule notification poll: %w", err)
	}
	c.Start()
	w.cron = c
	return nil
}

// Stop cancels polling and waits for any in-flight poll to finish. The
// watcher can be started again afterwards; the seen baseline is kept.
func (w *NotificationWatcher) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
}

// poll is the scheduled entry point. The guard skips stray ticks delivered
// while Stop is in progress; Stop itself waits for any running poll, so no
// callback fires after Stop returns.
func (w *NotificationWatcher) poll() {
	w.mu.Lock()
	running := w.cron != nil
	w.mu.Unlock()
	if !running {
		return
	}
	w.pollOnce()
}

func (w *NotificationWatcher) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()

	var items []domain.Notification
	path := fmt.Sprintf("/api/notifications/user/%d", w.userID)
	if err := w.gateway.CallInto(ctx, http.MethodGet, path, nil, &items); err != nil {
		w.log.Debug().Err(err).Msg("notification poll failed")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var fresh []domain.Notification
	for _, n := range items {
		if _, ok := w.seen[n.ID]; !ok {
			w.seen[n.ID] = struct{}{}
			fresh = append(fresh, n)
		}
	}

	if !w.primed {
		w.primed = true
		return
	}
	if len(fresh) > 0 && w.onNew != nil {
		w.onNew(fresh)
	}
}
