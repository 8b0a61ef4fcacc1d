package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// maxClientLength bounds the stored client descriptor.
const maxClientLength = 255

// ErrViewDropped is returned when the async queue is full and a view was not recorded.
var ErrViewDropped = errors.New("view dropped: queue full")

// ViewQueue accepts events for background persistence.
type ViewQueue interface {
	Enqueue(e models.ViewEvent) bool
}

// ViewRecorder persists one ViewEvent per successful view and bumps the link counter.
type ViewRecorder struct {
	store  LinkViewStore
	queue  ViewQueue
	logger *zap.Logger
	now    func() time.Time
}

// LinkViewStore is what the recorder writes to.
type LinkViewStore interface {
	CreateViewEvents(ctx context.Context, events []models.ViewEvent) error
	IncrementViews(ctx context.Context, linkID string, by int64) (int64, error)
}

// NewViewRecorder writes synchronously to store. When queue is non-nil views are
// handed to it instead.
func NewViewRecorder(store LinkViewStore, queue ViewQueue, logger *zap.Logger) *ViewRecorder {
	return &ViewRecorder{
		store:  store,
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}
}

// Record stores a view of link by viewerID (nil for anonymous visitors) using client.
// The event insert and the counter increment are two separate writes; the
// increment itself is atomic in the store.
func (r *ViewRecorder) Record(ctx context.Context, link *models.Link, viewerID *string, client string) error {
	if len(client) > maxClientLength {
		client = strings.ToValidUTF8(client[:maxClientLength], "")
	}

	event := models.ViewEvent{
		ID:        uuid.NewString(),
		LinkID:    link.ID,
		ViewerID:  viewerID,
		ViewedAt:  r.now().UTC(),
		UserAgent: client,
	}

	if r.queue != nil {
		if !r.queue.Enqueue(event) {
			return ErrViewDropped
		}
		return nil
	}

	if err := r.store.CreateViewEvents(ctx, []models.ViewEvent{event}); err != nil {
		r.logger.Error("cannot store view event", zap.String("link_id", link.ID), zap.Error(err))
		return fmt.Errorf("record view: %w", err)
	}

	if _, err := r.store.IncrementViews(ctx, link.ID, 1); err != nil {
		r.logger.Error("cannot increment views", zap.String("link_id", link.ID), zap.Error(err))
		return fmt.Errorf("increment views: %w", err)
	}

	return nil
}
