package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// Helper to set up a mock DB and repository
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *LinkRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock, NewLinkRepository(db, zap.NewNop())
}

var linkCols = []string{"id", "token", "user_id", "name", "description", "url", "thumbnail_url", "password", "show_password", "views", "created_at", "updated_at"}

func TestCreateLink(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	now := time.Now()
	link := models.Link{ID: "l1", Token: "aB3dE5fG", UserID: "u1", Name: "Docs", URL: "https://example.com", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(`INSERT INTO links`).
		WithArgs("l1", "aB3dE5fG", "u1", "Docs", nil, "https://example.com", nil, nil, false, int64(0), now, now).
		WillReturnRows(sqlmock.NewRows(linkCols).
			AddRow("l1", "aB3dE5fG", "u1", "Docs", nil, "https://example.com", nil, nil, false, 0, now, now))

	result, err := repo.CreateLink(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, "aB3dE5fG", result.Token)
	assert.Nil(t, result.Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLink_TokenConflict(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO links`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "links_token_key"})

	_, err := repo.CreateLink(context.Background(), models.Link{ID: "l1", Token: "dup"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLinkByToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		rows    *sqlmock.Rows
		wantErr error
	}{
		{
			name:  "found",
			token: "abc12345",
			rows: sqlmock.NewRows(linkCols).
				AddRow("l1", "abc12345", "u1", "Docs", "two\nlines", "https://example.com", nil, "secret", true, 7, time.Now(), time.Now()),
		},
		{
			name:    "missing",
			token:   "'; DROP TABLE links; --",
			rows:    sqlmock.NewRows(linkCols),
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, repo := setupMockDB(t)

			mock.ExpectQuery(`SELECT .+ FROM links WHERE token = \$1;`).
				WithArgs(tt.token).
				WillReturnRows(tt.rows)

			link, err := repo.FindLinkByToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), link.Views)
				require.NotNil(t, link.Password)
				assert.Equal(t, "secret", *link.Password)
				assert.True(t, link.ShowPassword)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIncrementViews(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`UPDATE links SET views = views \+ \$1 WHERE id = \$2 RETURNING views;`).
		WithArgs(int64(1), "l1").
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(42))

	views, err := repo.IncrementViews(context.Background(), "l1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), views)

	mock.ExpectQuery(`UPDATE links SET views`).
		WithArgs(int64(1), "gone").
		WillReturnRows(sqlmock.NewRows([]string{"views"}))

	_, err = repo.IncrementViews(context.Background(), "gone", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLink(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM links WHERE id = \$1 AND user_id = \$2;`).
		WithArgs("l1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM links`).
		WithArgs("l1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteLink(context.Background(), "l1", "u1"))
	assert.ErrorIs(t, repo.DeleteLink(context.Background(), "l1", "u2"), apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateViewEvents(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	now := time.Now()
	viewer := "u2"
	events := []models.ViewEvent{
		{ID: "e1", LinkID: "l1", ViewedAt: now, UserAgent: "curl"},
		{ID: "e2", LinkID: "l1", ViewerID: &viewer, ViewedAt: now, UserAgent: "firefox"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO link_views`).WithArgs("e1", "l1", nil, now, "curl").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO link_views`).WithArgs("e2", "l1", "u2", now, "firefox").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.CreateViewEvents(context.Background(), events))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindViewEventsByLinkIDs(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, link_id, viewer_id, viewed_at, user_agent FROM link_views WHERE viewed_at >= \$1 AND link_id IN \(\$2, \$3\)`).
		WithArgs(since, "l1", "l2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "link_id", "viewer_id", "viewed_at", "user_agent"}).
			AddRow("e1", "l1", nil, since.Add(time.Hour), "curl").
			AddRow("e2", "l2", "u3", since.Add(2*time.Hour), "safari"))

	events, err := repo.FindViewEventsByLinkIDs(context.Background(), []string{"l1", "l2"}, since)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Nil(t, events[0].ViewerID)
	require.NotNil(t, events[1].ViewerID)
	assert.Equal(t, "u3", *events[1].ViewerID)

	none, err := repo.FindViewEventsByLinkIDs(context.Background(), nil, since)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "created",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "email taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
				mock.ExpectRollback()
			},
			wantErr: apperr.ErrEmailTaken,
		},
		{
			name: "username taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO profiles`).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "profiles_username_key"})
				mock.ExpectRollback()
			},
			wantErr: apperr.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, repo := setupMockDB(t)
			tt.setup(mock)

			err := repo.CreateAccount(context.Background(),
				models.User{ID: "u1", Email: "a@example.com", PasswordHash: "hash"},
				models.Profile{ID: "u1", Username: "alice"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetStats(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM links\), \(SELECT COUNT\(\*\) FROM users\);`).
		WillReturnRows(sqlmock.NewRows([]string{"links", "users"}).AddRow(12, 3))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.ServiceStats{Links: 12, Users: 3}, stats)

	assert.NoError(t, mock.ExpectationsWereMet())
}
