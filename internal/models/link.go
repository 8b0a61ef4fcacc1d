// Package models defines the records stored by the link tracker and the
// request and response structures exchanged with its clients.
package models

import "time"

// DefaultThumbnailURL is shown for links that have no thumbnail of their own.
const DefaultThumbnailURL = "https://placehold.co/600x400?text=Link"

// Link is one shortened URL owned by a user.
type Link struct {
	// ID is assigned by the server on creation.
	ID string `json:"id" gorm:"primaryKey;type:text"`

	// Token is the public, immutable handle used in /view?token=<token>.
	Token string `json:"token" gorm:"uniqueIndex;not null;type:text"`

	// UserID references the owning user.
	UserID string `json:"user_id" gorm:"index;not null;type:text"`

	Name        string  `json:"name" gorm:"not null"`
	Description *string `json:"description,omitempty"`

	// URL is the protected destination.
	URL          string  `json:"url" gorm:"not null"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`

	// Password gates the destination. It is stored in plain text because the
	// gate is a convenience feature, not an access-control boundary.
	Password     *string `json:"password,omitempty"`
	ShowPassword bool    `json:"show_password" gorm:"not null;default:false"`

	// Views only ever grows.
	Views int64 `json:"views" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the collection name stable across backends.
func (Link) TableName() string {
	return "links"
}

// Protected reports whether a password gate is set on the link.
func (l Link) Protected() bool {
	return l.Password != nil
}

// Thumbnail returns the thumbnail URL or the placeholder when none is set.
func (l Link) Thumbnail() string {
	if l.ThumbnailURL == nil || *l.ThumbnailURL == "" {
		return DefaultThumbnailURL
	}
	return *l.ThumbnailURL
}

// LinkInput carries the owner-editable fields of a link. Token, owner, id and
// views are deliberately absent.
type LinkInput struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Password     *string `json:"password,omitempty"`
	ShowPassword bool    `json:"show_password"`
}
