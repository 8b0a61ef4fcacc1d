package service

import (
	"math"
	"sort"
	"time"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

const (
	// DailyWindow is the number of calendar days in the daily series, today included.
	DailyWindow = 14
	// TopLinksLimit is the length of the top links list.
	TopLinksLimit = 5
)

const dateLayout = "2006-01-02"

// WindowStart returns midnight of the first day in the daily series ending on now.
func WindowStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(DailyWindow - 1))
}

// Aggregate derives the dashboard for links and their view events. Calendar
// days are taken in now's location. Events of links not in links are ignored.
// It performs no I/O and the same input always yields the same output.
func Aggregate(links []models.Link, events []models.ViewEvent, now time.Time) models.Dashboard {
	loc := now.Location()
	start := WindowStart(now)

	daily := make([]models.DailyViews, DailyWindow)
	index := make(map[string]int, DailyWindow)
	for i := range daily {
		key := start.AddDate(0, 0, i).Format(dateLayout)
		daily[i] = models.DailyViews{Date: key}
		index[key] = i
	}

	dash := models.Dashboard{
		Empty:      len(links) == 0,
		TotalLinks: len(links),
		Daily:      daily,
		TopLinks:   make([]models.LinkViews, 0, TopLinksLimit),
	}

	owned := make(map[string]struct{}, len(links))
	for _, l := range links {
		owned[l.ID] = struct{}{}
		dash.TotalViews += l.Views

		if l.Protected() {
			dash.Categories.Private++
		} else {
			dash.Categories.Public++
		}
	}

	today := now.Format(dateLayout)
	for _, e := range events {
		if _, ok := owned[e.LinkID]; !ok {
			continue
		}

		key := e.ViewedAt.In(loc).Format(dateLayout)
		if i, ok := index[key]; ok {
			daily[i].Views++
		}
		if key == today {
			dash.TodayViews++
		}
	}

	ranked := make([]models.Link, len(links))
	copy(ranked, links)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	for i := 0; i < len(ranked) && i < TopLinksLimit; i++ {
		dash.TopLinks = append(dash.TopLinks, models.LinkViews{
			ID:    ranked[i].ID,
			Name:  ranked[i].Name,
			Token: ranked[i].Token,
			Views: ranked[i].Views,
		})
	}

	if len(links) > 0 {
		dash.AverageViews = math.Round(float64(dash.TotalViews)/float64(len(links))*10) / 10
	}

	return dash
}
