package cli

import (
	"context"

	"gorm.io/gorm"

	"rsvp-backend/application/serviceimpl"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/infrastructure/postgres"
	"rsvp-backend/infrastructure/redis"
	"rsvp-backend/pkg/config"
	"rsvp-backend/pkg/di"
	"rsvp-backend/pkg/logger"
)

// cliAdmin is the actor recorded in the activity log for CLI mutations.
var cliAdmin = &services.AdminContext{SessionID: "rsvpctl"}

// Backend is the slice of the app the CLI needs.
type Backend struct {
	DB     *gorm.DB
	Roster services.RosterService
	close  func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// BackendOpener builds a Backend. Tests swap in an SQLite one.
type BackendOpener func() (*Backend, error)

// NewBackend wires the roster service over db. searchCache may be nil.
func NewBackend(db *gorm.DB, searchCache repositories.GuestSearchCache) *Backend {
	guestRepo := postgres.NewGuestRepository(db)
	activity := serviceimpl.NewActivityLogService(postgres.NewActivityLogRepository(db))
	return &Backend{
		DB:     db,
		Roster: serviceimpl.NewRosterService(guestRepo, serviceimpl.NewGuestService(guestRepo, searchCache), searchCache, activity),
	}
}

// OpenBackend connects using the environment. Redis is used only to keep the
// public search cache coherent after an import.
func OpenBackend() (*Backend, error) {
	cfg := config.Load()
	if err := logger.Init(cfg.Logging.Dir, false); err != nil {
		return nil, err
	}

	db, err := postgres.NewDatabase(di.DatabaseConfig(cfg))
	if err != nil {
		return nil, err
	}

	var (
		client      *redis.RedisClient
		searchCache repositories.GuestSearchCache
	)
	if cfg.Redis.Enabled {
		client = redis.NewRedisClient(redis.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()); err != nil {
			logger.Warn(logger.CategoryStartup, "redis_unavailable", "Redis unavailable, search cache not invalidated", map[string]interface{}{"error": err.Error()})
			_ = client.Close()
			client = nil
		} else {
			searchCache = redis.NewGuestSearchCache(client, cfg.Redis.SearchCacheTTL)
		}
	}

	backend := NewBackend(db, searchCache)
	backend.close = func() {
		if client != nil {
			_ = client.Close()
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return backend, nil
}
