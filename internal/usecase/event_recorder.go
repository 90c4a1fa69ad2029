package usecase

import (
	"context"
	"fmt"
	"time"

	"IntelPull/internal/domain/models"
	drepo "IntelPull/internal/domain/repository"
	xlogger "IntelPull/pkg/logger"
)

// EventRecorder batches served events and routes them to the configured
// backend. Record never blocks the request path: events queue into a
// buffered channel and are dropped when the buffer is full.
type EventRecorder struct {
	pub     drepo.EventPublisher
	store   drepo.EventStore
	logger  *xlogger.Logger
	backend string
	batchSz int
	batchTO time.Duration

	events chan models.ServedEvent
	done   chan struct{}
}

// NewEventRecorder creates a recorder flushing to the given backend,
// either "kafka" or "clickhouse".
func NewEventRecorder(
	pub drepo.EventPublisher,
	store drepo.EventStore,
	log *xlogger.Logger,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *EventRecorder {
	if batchSz < 1 {
		batchSz = 100
	}
	if batchTO <= 0 {
		batchTO = time.Second
	}
	r := &EventRecorder{
		pub:     pub,
		store:   store,
		logger:  log,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
		events:  make(chan models.ServedEvent, 4096),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record queues an event for delivery.
func (r *EventRecorder) Record(e models.ServedEvent) {
	select {
	case r.events <- e:
	default:
		// full buffer, drop rather than block serving
	}
}

func (r *EventRecorder) run() {
	defer close(r.done)

	batch := make([]models.ServedEvent, 0, r.batchSz)
	ticker := time.NewTicker(r.batchTO)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.flush(batch); err != nil {
			r.logger.Error("event recorder: flush failed",
				xlogger.Error(err),
				xlogger.Int("events", len(batch)),
			)
		}
		batch = batch[:0]
	}

	for {
		select {
		case e, ok := <-r.events:
			if !ok {
				flush()
				return
			}
			batch = append(batch, e)
			if len(batch) >= r.batchSz {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (r *EventRecorder) flush(batch []models.ServedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch r.backend {
	case "kafka":
		return r.pub.PublishBatch(ctx, batch)
	case "clickhouse":
		return r.store.StoreBatch(ctx, batch)
	}
	return fmt.Errorf("unknown backend: %s", r.backend)
}

// Close drains pending events and closes the underlying backend.
func (r *EventRecorder) Close() error {
	close(r.events)
	<-r.done

	var err error
	if r.pub != nil {
		err = r.pub.Close()
	}
	if r.store != nil {
		if cerr := r.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
