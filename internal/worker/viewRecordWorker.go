// Package worker runs background writers.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// batchSize is the number of queued events that forces a flush before the next tick.
const batchSize = 25

// Repo is the part of the store the worker writes to.
type Repo interface {
	CreateViewEvents(ctx context.Context, events []models.ViewEvent) error
	IncrementViews(ctx context.Context, linkID string, by int64) (int64, error)
}

// ViewRecordWorker batches view events and writes them in the background.
type ViewRecordWorker struct {
	in       chan models.ViewEvent
	logger   *zap.Logger
	repo     Repo
	interval time.Duration
}

// NewViewRecordWorker creates a worker with a queue of the given capacity that
// flushes at least every interval.
func NewViewRecordWorker(logger *zap.Logger, repo Repo, capacity int, interval time.Duration) *ViewRecordWorker {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &ViewRecordWorker{
		in:       make(chan models.ViewEvent, capacity),
		logger:   logger,
		repo:     repo,
		interval: interval,
	}
}

// Enqueue hands an event to the worker without blocking. It reports false when
// the queue is full and the event was dropped.
func (w *ViewRecordWorker) Enqueue(e models.ViewEvent) bool {
	select {
	case w.in <- e:
		return true
	default:
		w.logger.Warn("view queue full, dropping event", zap.String("link_id", e.LinkID))
		return false
	}
}

func (w *ViewRecordWorker) flush(events []models.ViewEvent) {
	w.logger.Debug("flushing view events", zap.Int("count", len(events)))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := w.repo.CreateViewEvents(ctx, events); err != nil {
		w.logger.Error("cannot store view events", zap.Int("count", len(events)), zap.Error(err))
		return
	}

	counts := make(map[string]int64)
	order := make([]string, 0)
	for _, e := range events {
		if _, seen := counts[e.LinkID]; !seen {
			order = append(order, e.LinkID)
		}
		counts[e.LinkID]++
	}

	for _, id := range order {
		if _, err := w.repo.IncrementViews(ctx, id, counts[id]); err != nil {
			w.logger.Error("cannot increment views", zap.String("link_id", id), zap.Error(err))
		}
	}
}

// Run consumes the queue until ctx is cancelled, then flushes what is left.
func (w *ViewRecordWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var events []models.ViewEvent

	send := func() {
		if len(events) == 0 {
			return
		}
		w.flush(events)
		events = events[:0]
	}

	for {
		select {
		case e := <-w.in:
			events = append(events, e)
			if len(events) > batchSize {
				send()
			}
		case <-ticker.C:
			send()
		case <-ctx.Done():
			for {
				select {
				case e := <-w.in:
					events = append(events, e)
				default:
					send()
					w.logger.Info("view record worker stopped")
					return
				}
			}
		}
	}
}
