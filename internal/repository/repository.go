// Package repository implements the PostgreSQL backend of the link tracker.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// InitDB opens a pgx-backed connection pool and checks that the server answers.
func InitDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// LinkRepository stores links, view events, profiles and users in PostgreSQL.
type LinkRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLinkRepository wraps an open database.
func NewLinkRepository(db *sql.DB, logger *zap.Logger) *LinkRepository {
	return &LinkRepository{
		db:     db,
		logger: logger,
	}
}

// mapUnique turns unique violations into domain conflicts.
func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "users_email_key":
		return apperr.ErrEmailTaken
	case "profiles_username_key":
		return apperr.ErrUsernameTaken
	default:
		return apperr.ErrConflict
	}
}

const linkColumns = "id, token, user_id, name, description, url, thumbnail_url, password, show_password, views, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(row scanner) (*models.Link, error) {
	var l models.Link

	err := row.Scan(&l.ID, &l.Token, &l.UserID, &l.Name, &l.Description, &l.URL,
		&l.ThumbnailURL, &l.Password, &l.ShowPassword, &l.Views, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *LinkRepository) CreateLink(ctx context.Context, l models.Link) (*models.Link, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO links ("+linkColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING "+linkColumns,
		l.ID, l.Token, l.UserID, l.Name, l.Description, l.URL, l.ThumbnailURL, l.Password, l.ShowPassword, l.Views, l.CreatedAt, l.UpdatedAt,
	)

	link, err := scanLink(row)
	if err != nil {
		if mapped := mapUnique(err); mapped != err {
			return nil, mapped
		}
		r.logger.Error("create link failed", zap.Error(err))
		return nil, fmt.Errorf("create link: %w", err)
	}

	return link, nil
}

func (r *LinkRepository) UpdateLink(ctx context.Context, l models.Link) (*models.Link, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE links SET name = $1, description = $2, url = $3, thumbnail_url = $4, password = $5, show_password = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9 RETURNING `+linkColumns,
		l.Name, l.Description, l.URL, l.ThumbnailURL, l.Password, l.ShowPassword, l.UpdatedAt, l.ID, l.UserID,
	)

	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update link: %w", err)
	}

	return link, nil
}

// DeleteLink removes the link; its view events go with it through ON DELETE CASCADE.
func (r *LinkRepository) DeleteLink(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM links WHERE id = $1 AND user_id = $2;", id, userID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (r *LinkRepository) FindLinkByID(ctx context.Context, id string) (*models.Link, error) {
	return scanLink(r.db.QueryRowContext(ctx, "SELECT "+linkColumns+" FROM links WHERE id = $1;", id))
}

// FindLinkByToken looks the token up verbatim; it is only ever a bound parameter.
func (r *LinkRepository) FindLinkByToken(ctx context.Context, token string) (*models.Link, error) {
	return scanLink(r.db.QueryRowContext(ctx, "SELECT "+linkColumns+" FROM links WHERE token = $1;", token))
}

func (r *LinkRepository) FindLinksByUserID(ctx context.Context, userID string) ([]models.Link, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+linkColumns+" FROM links WHERE user_id = $1 ORDER BY created_at DESC;", userID)
	if err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}
	defer rows.Close()

	links := make([]models.Link, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}

	return links, rows.Err()
}

// IncrementViews bumps the counter in one statement, so concurrent visits never lose updates.
func (r *LinkRepository) IncrementViews(ctx context.Context, linkID string, by int64) (int64, error) {
	var views int64

	err := r.db.QueryRowContext(ctx, "UPDATE links SET views = views + $1 WHERE id = $2 RETURNING views;", by, linkID).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}

	return views, nil
}

func (r *LinkRepository) CreateViewEvents(ctx context.Context, events []models.ViewEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, e := range events {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO link_views (id, link_id, viewer_id, viewed_at, user_agent) VALUES ($1, $2, $3, $4, $5);",
			e.ID, e.LinkID, e.ViewerID, e.ViewedAt, e.UserAgent,
		)
		if err != nil {
			tx.Rollback()
			r.logger.Error("insert view event failed", zap.String("link_id", e.LinkID), zap.Error(err))
			return fmt.Errorf("create view events: %w", err)
		}
	}

	return tx.Commit()
}

func (r *LinkRepository) FindViewEventsByLinkIDs(ctx context.Context, linkIDs []string, since time.Time) ([]models.ViewEvent, error) {
	events := make([]models.ViewEvent, 0)
	if len(linkIDs) == 0 {
		return events, nil
	}

	args := make([]any, 0, len(linkIDs)+1)
	args = append(args, since)

	placeholders := make([]string, len(linkIDs))
	for i, id := range linkIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, link_id, viewer_id, viewed_at, user_agent FROM link_views WHERE viewed_at >= $1 AND link_id IN ("+
			strings.Join(placeholders, ", ")+") ORDER BY viewed_at;",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("find view events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.ViewEvent
		if err := rows.Scan(&e.ID, &e.LinkID, &e.ViewerID, &e.ViewedAt, &e.UserAgent); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func scanProfile(row scanner) (*models.Profile, error) {
	var p models.Profile

	err := row.Scan(&p.ID, &p.Username, &p.AvatarURL, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *LinkRepository) FindProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, "SELECT id, username, avatar_url, updated_at FROM profiles WHERE id = $1;", id))
}

func (r *LinkRepository) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, "SELECT id, username, avatar_url, updated_at FROM profiles WHERE username = $1;", username))
}

func (r *LinkRepository) UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE profiles SET username = $1, avatar_url = $2, updated_at = $3 WHERE id = $4 RETURNING id, username, avatar_url, updated_at;",
		p.Username, p.AvatarURL, p.UpdatedAt, p.ID,
	)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, mapUnique(err)
	}

	return profile, nil
}

// CreateAccount inserts the user and its profile in one transaction.
func (r *LinkRepository) CreateAccount(ctx context.Context, u models.User, p models.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4);",
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		tx.Rollback()
		return mapUnique(err)
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO profiles (id, username, avatar_url, updated_at) VALUES ($1, $2, $3, $4);",
		p.ID, p.Username, p.AvatarURL, p.UpdatedAt)
	if err != nil {
		tx.Rollback()
		return mapUnique(err)
	}

	return tx.Commit()
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *LinkRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE email = $1;", email))
}

func (r *LinkRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE id = $1;", id))
}

func (r *LinkRepository) UpdatePasswordHash(ctx context.Context, userID string, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2;", hash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (r *LinkRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *LinkRepository) GetStats(ctx context.Context) (*models.ServiceStats, error) {
	var stats models.ServiceStats

	err := r.db.QueryRowContext(ctx, "SELECT (SELECT COUNT(*) FROM links), (SELECT COUNT(*) FROM users);").
		Scan(&stats.Links, &stats.Users)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &stats, nil
}
