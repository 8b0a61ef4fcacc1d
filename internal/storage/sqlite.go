package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// SQLiteStorage is a single-file backend built on gorm and a pure Go SQLite driver.
type SQLiteStorage struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSQLiteStorage opens (creating when needed) the database at path and
// migrates the schema.
func NewSQLiteStorage(path string, log *zap.Logger) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Link{}, &models.ViewEvent{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)

	log.Info("sqlite storage ready", zap.String("path", path))

	return &SQLiteStorage{db: db, logger: log}, nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *SQLiteStorage) CreateLink(ctx context.Context, link models.Link) (*models.Link, error) {
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("create link: %w", err)
	}
	return &link, nil
}

func (s *SQLiteStorage) UpdateLink(ctx context.Context, link models.Link) (*models.Link, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("id = ? AND user_id = ?", link.ID, link.UserID).
		Updates(map[string]any{
			"name":          link.Name,
			"description":   link.Description,
			"url":           link.URL,
			"thumbnail_url": link.ThumbnailURL,
			"password":      link.Password,
			"show_password": link.ShowPassword,
			"updated_at":    link.UpdatedAt,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update link: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	return s.FindLinkByID(ctx, link.ID)
}

// DeleteLink removes the link together with its view events.
func (s *SQLiteStorage) DeleteLink(ctx context.Context, id string, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Link{})
		if res.Error != nil {
			return fmt.Errorf("delete link: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}

		if err := tx.Where("link_id = ?", id).Delete(&models.ViewEvent{}).Error; err != nil {
			return fmt.Errorf("delete link views: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStorage) FindLinkByID(ctx context.Context, id string) (*models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, notFound(err)
	}
	return &link, nil
}

func (s *SQLiteStorage) FindLinkByToken(ctx context.Context, token string) (*models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&link).Error; err != nil {
		return nil, notFound(err)
	}
	return &link, nil
}

func (s *SQLiteStorage) FindLinksByUserID(ctx context.Context, userID string) ([]models.Link, error) {
	links := make([]models.Link, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}
	return links, nil
}

// IncrementViews adds by to the counter in a single statement so concurrent
// visits never lose an update.
func (s *SQLiteStorage) IncrementViews(ctx context.Context, linkID string, by int64) (int64, error) {
	var views int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Link{}).Where("id = ?", linkID).UpdateColumn("views", gorm.Expr("views + ?", by))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return tx.Model(&models.Link{}).Where("id = ?", linkID).Pluck("views", &views).Error
	})
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}

	return views, nil
}

func (s *SQLiteStorage) CreateViewEvents(ctx context.Context, events []models.ViewEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]models.ViewEvent, len(events))
	for i, e := range events {
		e.ViewedAt = e.ViewedAt.UTC()
		rows[i] = e
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("create view events: %w", err)
	}
	return nil
}

// FindViewEventsByLinkIDs returns events viewed at or after since. Timestamps
// are stored as text, so both sides of the comparison are kept in UTC.
func (s *SQLiteStorage) FindViewEventsByLinkIDs(ctx context.Context, linkIDs []string, since time.Time) ([]models.ViewEvent, error) {
	events := make([]models.ViewEvent, 0)
	if len(linkIDs) == 0 {
		return events, nil
	}

	err := s.db.WithContext(ctx).
		Where("link_id IN ? AND viewed_at >= ?", linkIDs, since.UTC()).
		Order("viewed_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("find view events: %w", err)
	}
	return events, nil
}

func (s *SQLiteStorage) FindProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *SQLiteStorage) FindProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *SQLiteStorage) UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"username":   profile.Username,
			"avatar_url": profile.AvatarURL,
			"updated_at": profile.UpdatedAt,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, apperr.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	return s.FindProfileByID(ctx, profile.ID)
}

func (s *SQLiteStorage) CreateAccount(ctx context.Context, user models.User, profile models.Profile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.ErrEmailTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.Create(&profile).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.ErrUsernameTaken
			}
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *SQLiteStorage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *SQLiteStorage) UpdatePasswordHash(ctx context.Context, userID string, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) PingContext(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStorage) GetStats(ctx context.Context) (*models.ServiceStats, error) {
	var links, users int64

	if err := s.db.WithContext(ctx).Model(&models.Link{}).Count(&links).Error; err != nil {
		return nil, fmt.Errorf("count links: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return &models.ServiceStats{Links: int(links), Users: int(users)}, nil
}
