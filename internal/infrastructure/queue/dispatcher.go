package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/trackerhq/bugtracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notification delivery jobs to a fixed set of workers,
// sharded by user ID so notifications for one user are persisted in order.
type Dispatcher struct {
	workers []chan ports.NotificationDispatch
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationDispatch, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationDispatch, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its user. Non-blocking
// up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.NotificationDispatch) {
	d.workers[d.shardIndex(job.UserID)] <- job
}

func (d *Dispatcher) shardIndex(userID int64) int {
	idx := userID % int64(len(d.workers))
	if idx < 0 {
		idx = -idx
	}
	return int(idx)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationDispatch) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			_, err := d.service.AddNotification(ctx, ports.NotificationInput{
				UserID:  job.UserID,
				Type:    job.Type,
				Message: job.Message,
			})
			if err != nil {
				d.log.Error().Err(err).
					Int64("user_id", job.UserID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
