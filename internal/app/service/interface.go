package service

import (
	"context"
	"time"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// LinkStore persists links. Update and delete are scoped by owner id: a
// mismatching owner behaves like a missing record.
type LinkStore interface {
	CreateLink(ctx context.Context, link models.Link) (*models.Link, error)
	UpdateLink(ctx context.Context, link models.Link) (*models.Link, error)
	DeleteLink(ctx context.Context, id string, userID string) error
	FindLinkByID(ctx context.Context, id string) (*models.Link, error)
	FindLinkByToken(ctx context.Context, token string) (*models.Link, error)
	FindLinksByUserID(ctx context.Context, userID string) ([]models.Link, error)
	IncrementViews(ctx context.Context, linkID string, by int64) (int64, error)
}

// ViewStore persists view events.
type ViewStore interface {
	CreateViewEvents(ctx context.Context, events []models.ViewEvent) error
	FindViewEventsByLinkIDs(ctx context.Context, linkIDs []string, since time.Time) ([]models.ViewEvent, error)
}

// ProfileStore persists profiles.
type ProfileStore interface {
	FindProfileByID(ctx context.Context, id string) (*models.Profile, error)
	FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error)
}

// UserStore persists credential records.
type UserStore interface {
	CreateAccount(ctx context.Context, user models.User, profile models.Profile) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, hash string) error
}

// Storage is implemented by every backend.
type Storage interface {
	LinkStore
	ViewStore
	ProfileStore
	UserStore
	PingContext(ctx context.Context) error
	GetStats(ctx context.Context) (*models.ServiceStats, error)
}

// LinkServiceIface is the link management API consumed by transports.
type LinkServiceIface interface {
	Create(ctx context.Context, userID string, in models.LinkInput) (*models.Link, error)
	Update(ctx context.Context, userID string, id string, in models.LinkInput) (*models.Link, error)
	Delete(ctx context.Context, userID string, id string) error
	Get(ctx context.Context, userID string, id string) (*models.Link, error)
	List(ctx context.Context, userID string) ([]models.Link, error)
	ViewURL(token string) string
}

// ViewServiceIface opens public links.
type ViewServiceIface interface {
	Open(ctx context.Context, req ViewRequest) (*ViewResult, error)
}

// AuthIface manages accounts and sessions.
type AuthIface interface {
	SignUp(ctx context.Context, email, password, username string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, session *models.Session) error
	UpdatePassword(ctx context.Context, userID string, password string) error
	ParseToken(ctx context.Context, raw string) (*models.Session, error)
}

// ProfileServiceIface manages profiles.
type ProfileServiceIface interface {
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, in models.ProfileInput) (*models.Profile, error)
}

// StatsServiceIface builds dashboards.
type StatsServiceIface interface {
	Dashboard(ctx context.Context, userID string) (*models.Dashboard, error)
	ServiceStats(ctx context.Context) (*models.ServiceStats, error)
}
