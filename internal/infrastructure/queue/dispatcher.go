package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/taskly/tracker-api/internal/api/metrics"
	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity events to a fixed set of workers sharded by
// user id, so one user's audit trail is appended in the order the events
// were produced.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event on the worker responsible for its user. When
// that worker's buffer is full the event is dropped with a warning: the
// audit trail is best effort and must never block a request.
func (d *Dispatcher) Record(event domain.ActivityEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Int64("user_id", event.UserID).Str("action", event.Action).Msg("activity queue full, event dropped")
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	n := int64(len(d.workers))
	return int(((userID % n) + n) % n)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Int64("user_id", event.UserID).
					Int("worker_id", id).
					Msg("activity insert failed")
				metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
				continue
			}
			metrics.ActivityProcessedTotal.WithLabelValues(event.Entity, event.Action).Inc()
		}
	}
}
