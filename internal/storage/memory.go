// Package storage provides the in-memory and SQLite backends of the link tracker.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// MemoryStorage keeps every collection in process memory. It is the default
// backend and the one used by tests.
type MemoryStorage struct {
	mu sync.RWMutex

	links    map[string]*models.Link
	order    []string
	tokens   map[string]string
	views    []models.ViewEvent
	profiles map[string]*models.Profile
	names    map[string]string
	users    map[string]*models.User
	emails   map[string]string
}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		links:    make(map[string]*models.Link),
		tokens:   make(map[string]string),
		profiles: make(map[string]*models.Profile),
		names:    make(map[string]string),
		users:    make(map[string]*models.User),
		emails:   make(map[string]string),
	}
}

func (m *MemoryStorage) CreateLink(ctx context.Context, link models.Link) (*models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tokens[link.Token]; exists {
		return nil, apperr.ErrConflict
	}
	if _, exists := m.links[link.ID]; exists {
		return nil, apperr.ErrConflict
	}

	stored := link
	m.links[link.ID] = &stored
	m.tokens[link.Token] = link.ID
	m.order = append(m.order, link.ID)

	out := stored
	return &out, nil
}

func (m *MemoryStorage) UpdateLink(ctx context.Context, link models.Link) (*models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.links[link.ID]
	if !ok || stored.UserID != link.UserID {
		return nil, apperr.ErrNotFound
	}

	stored.Name = link.Name
	stored.Description = link.Description
	stored.URL = link.URL
	stored.ThumbnailURL = link.ThumbnailURL
	stored.Password = link.Password
	stored.ShowPassword = link.ShowPassword
	stored.UpdatedAt = link.UpdatedAt

	out := *stored
	return &out, nil
}

func (m *MemoryStorage) DeleteLink(ctx context.Context, id string, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.links[id]
	if !ok || stored.UserID != userID {
		return apperr.ErrNotFound
	}

	delete(m.links, id)
	delete(m.tokens, stored.Token)

	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	kept := m.views[:0]
	for _, e := range m.views {
		if e.LinkID != id {
			kept = append(kept, e)
		}
	}
	m.views = kept

	return nil
}

func (m *MemoryStorage) FindLinkByID(ctx context.Context, id string) (*models.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.links[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	out := *stored
	return &out, nil
}

func (m *MemoryStorage) FindLinkByToken(ctx context.Context, token string) (*models.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.tokens[token]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	out := *m.links[id]
	return &out, nil
}

// FindLinksByUserID returns the owner's links, newest first.
func (m *MemoryStorage) FindLinksByUserID(ctx context.Context, userID string) ([]models.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Link, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		l := m.links[m.order[i]]
		if l.UserID == userID {
			result = append(result, *l)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (m *MemoryStorage) IncrementViews(ctx context.Context, linkID string, by int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.links[linkID]
	if !ok {
		return 0, apperr.ErrNotFound
	}

	stored.Views += by
	return stored.Views, nil
}

func (m *MemoryStorage) CreateViewEvents(ctx context.Context, events []models.ViewEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range events {
		if _, ok := m.links[e.LinkID]; !ok {
			return apperr.ErrNotFound
		}
	}

	m.views = append(m.views, events...)
	return nil
}

func (m *MemoryStorage) FindViewEventsByLinkIDs(ctx context.Context, linkIDs []string, since time.Time) ([]models.ViewEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]struct{}, len(linkIDs))
	for _, id := range linkIDs {
		wanted[id] = struct{}{}
	}

	result := make([]models.ViewEvent, 0)
	for _, e := range m.views {
		if _, ok := wanted[e.LinkID]; !ok {
			continue
		}
		if e.ViewedAt.Before(since) {
			continue
		}
		result = append(result, e)
	}

	return result, nil
}

func (m *MemoryStorage) FindProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	out := *p
	return &out, nil
}

func (m *MemoryStorage) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.names[username]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	out := *m.profiles[id]
	return &out, nil
}

func (m *MemoryStorage) UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.profiles[profile.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	if owner, taken := m.names[profile.Username]; taken && owner != profile.ID {
		return nil, apperr.ErrUsernameTaken
	}

	delete(m.names, stored.Username)
	m.names[profile.Username] = profile.ID

	stored.Username = profile.Username
	stored.AvatarURL = profile.AvatarURL
	stored.UpdatedAt = profile.UpdatedAt

	out := *stored
	return &out, nil
}

// CreateAccount stores the user and its profile together or not at all.
func (m *MemoryStorage) CreateAccount(ctx context.Context, user models.User, profile models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.emails[user.Email]; taken {
		return apperr.ErrEmailTaken
	}
	if _, taken := m.names[profile.Username]; taken {
		return apperr.ErrUsernameTaken
	}

	u := user
	p := profile
	m.users[user.ID] = &u
	m.emails[user.Email] = user.ID
	m.profiles[profile.ID] = &p
	m.names[profile.Username] = profile.ID

	return nil
}

func (m *MemoryStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	out := *m.users[id]
	return &out, nil
}

func (m *MemoryStorage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	out := *u
	return &out, nil
}

func (m *MemoryStorage) UpdatePasswordHash(ctx context.Context, userID string, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}

	u.PasswordHash = hash
	return nil
}

func (m *MemoryStorage) PingContext(ctx context.Context) error {
	return nil
}

func (m *MemoryStorage) GetStats(ctx context.Context) (*models.ServiceStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &models.ServiceStats{Links: len(m.links), Users: len(m.users)}, nil
}
