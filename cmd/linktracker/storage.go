package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/cache"
	"github.com/atinyakov/go-link-tracker/internal/config"
	"github.com/atinyakov/go-link-tracker/internal/repository"
	"github.com/atinyakov/go-link-tracker/internal/storage"
)

var errNoPersistentStore = errors.New("no persistent store configured: set DATABASE_DSN or SQLITE_PATH")

// openStorage picks Postgres, then SQLite, then memory. Postgres migrations
// run on open.
func openStorage(ctx context.Context, opts *config.Options, log *zap.Logger) (service.Storage, func() error, error) {
	switch {
	case opts.DatabaseDSN != "":
		log.Info("using postgres storage")

		db, err := repository.InitDB(ctx, opts.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewLinkRepository(db, log), db.Close, nil

	case opts.SQLitePath != "":
		log.Info("using sqlite storage", zap.String("path", opts.SQLitePath))

		s, err := storage.NewSQLiteStorage(opts.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		log.Warn("using in memory storage, data is lost on restart")
		return storage.NewMemoryStorage(), func() error { return nil }, nil
	}
}

// openCache connects to Redis when configured and falls back to memory when
// it is unreachable.
func openCache(ctx context.Context, opts *config.Options, log *zap.Logger) cache.Cache {
	if opts.RedisURL == "" {
		return cache.NewMemoryCache()
	}

	c, err := cache.NewRedisCache(ctx, opts.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, keeping revoked sessions in memory", zap.Error(err))
		return cache.NewMemoryCache()
	}

	log.Info("using redis for session revocation")
	return c
}
