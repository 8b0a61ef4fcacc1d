package models

import "time"

// ViewEvent is one recorded visit to a link.
type ViewEvent struct {
	ID     string `json:"id" gorm:"primaryKey;type:text"`
	LinkID string `json:"link_id" gorm:"index;not null;type:text"`

	// ViewerID is nil for anonymous visitors.
	ViewerID *string `json:"viewer_id,omitempty" gorm:"type:text"`

	ViewedAt  time.Time `json:"viewed_at" gorm:"index;not null"`
	UserAgent string    `json:"user_agent"`
}

// TableName keeps the collection name stable across backends.
func (ViewEvent) TableName() string {
	return "link_views"
}
