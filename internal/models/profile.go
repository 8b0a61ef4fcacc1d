package models

import "time"

// Profile is the public identity of a user.
type Profile struct {
	// ID matches the authenticated user id.
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;type:text"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the collection name stable across backends.
func (Profile) TableName() string {
	return "profiles"
}

// ProfileInput carries the owner-editable profile fields.
type ProfileInput struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// User is the credential record behind a profile.
type User struct {
	ID           string    `json:"-" gorm:"primaryKey;type:text"`
	Email        string    `json:"-" gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"-"`
}

// TableName keeps the collection name stable across backends.
func (User) TableName() string {
	return "users"
}

// Session is an authenticated user context. It is created on sign-up or
// sign-in, carried in the request context and torn down on sign-out.
type Session struct {
	Token     string    `json:"token,omitempty"`
	TokenID   string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
