package models

// DailyViews is the number of views recorded on one calendar date.
type DailyViews struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Views int    `json:"views"`
}

// LinkViews is a compact link entry used in top-N lists.
type LinkViews struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
	Views int64  `json:"views"`
}

// CategorySplit counts links by protection status.
type CategorySplit struct {
	Public  int `json:"public"`
	Private int `json:"private"`
}

// Dashboard holds the metrics derived from a user's links and view events.
type Dashboard struct {
	// Empty is set when the user has no links.
	Empty        bool          `json:"empty"`
	TotalLinks   int           `json:"total_links"`
	TotalViews   int64         `json:"total_views"`
	TodayViews   int           `json:"today_views"`
	AverageViews float64       `json:"average_views"`
	Daily        []DailyViews  `json:"daily"`
	TopLinks     []LinkViews   `json:"top_links"`
	Categories   CategorySplit `json:"categories"`
}

// ServiceStats describes the whole service.
type ServiceStats struct {
	Links int `json:"links"`
	Users int `json:"users"`
}
