package service

import (
	"context"
	"fmt"
	"time"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// StatsService builds dashboards from stored links and view events.
type StatsService struct {
	storage Storage
	loc     *time.Location
	now     func() time.Time
}

// NewStatsService creates a StatsService counting calendar days in loc.
func NewStatsService(storage Storage, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}

	return &StatsService{storage: storage, loc: loc, now: time.Now}
}

// Dashboard aggregates the links of userID and their recent view events.
func (s *StatsService) Dashboard(ctx context.Context, userID string) (*models.Dashboard, error) {
	now := s.now().In(s.loc)

	links, err := s.storage.FindLinksByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}

	events, err := s.storage.FindViewEventsByLinkIDs(ctx, ids, WindowStart(now))
	if err != nil {
		return nil, fmt.Errorf("load view events: %w", err)
	}

	dash := Aggregate(links, events, now)
	return &dash, nil
}

// ServiceStats reports service-wide counts.
func (s *StatsService) ServiceStats(ctx context.Context) (*models.ServiceStats, error) {
	return s.storage.GetStats(ctx)
}
