package handlers

import (
	"gorm.io/gorm"

	"rsvp-backend/domain/services"
	"rsvp-backend/infrastructure/redis"
	"rsvp-backend/infrastructure/storage"
	"rsvp-backend/pkg/config"
	"rsvp-backend/pkg/scheduler"
)

// Services contains all the services needed for handlers
type Services struct {
	GuestService       services.GuestService
	RsvpService        services.RsvpService
	RosterService      services.RosterService
	StoryService       services.StoryService
	AuthService        services.AuthService
	ActivityLogService services.ActivityLogService
}

// Infrastructure holds the backing clients the health checks probe.
// RedisClient, BunnyStorage and EventScheduler may be nil.
type Infrastructure struct {
	DB             *gorm.DB
	RedisClient    *redis.RedisClient
	BunnyStorage   storage.BunnyStorage
	EventScheduler scheduler.EventScheduler
}

// Handlers contains all HTTP handlers
type Handlers struct {
	GuestHandler       *GuestHandler
	RosterHandler      *RosterHandler
	StoryHandler       *StoryHandler
	AuthHandler        *AuthHandler
	HealthHandler      *HealthHandler
	LogHandler         *LogHandler
	ActivityLogHandler *ActivityLogHandler

	// Short accessors for routes
	Guest       *GuestHandler
	Roster      *RosterHandler
	Story       *StoryHandler
	Auth        *AuthHandler
	Health      *HealthHandler
	Log         *LogHandler
	ActivityLog *ActivityLogHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services, infra *Infrastructure, cfg *config.Config) *Handlers {
	guestHandler := NewGuestHandler(services.GuestService, services.RsvpService)
	rosterHandler := NewRosterHandler(services.RosterService)
	storyHandler := NewStoryHandler(services.StoryService)
	authHandler := NewAuthHandler(services.AuthService, cfg.Admin.CookieSecure)
	logHandler := NewLogHandler()
	activityLogHandler := NewActivityLogHandler(services.ActivityLogService)

	var healthHandler *HealthHandler
	if infra != nil {
		healthHandler = NewHealthHandler(infra.DB, infra.RedisClient, infra.BunnyStorage, infra.EventScheduler)
	} else {
		healthHandler = NewHealthHandler(nil, nil, nil, nil)
	}

	return &Handlers{
		GuestHandler:       guestHandler,
		RosterHandler:      rosterHandler,
		StoryHandler:       storyHandler,
		AuthHandler:        authHandler,
		HealthHandler:      healthHandler,
		LogHandler:         logHandler,
		ActivityLogHandler: activityLogHandler,

		// Short accessors
		Guest:       guestHandler,
		Roster:      rosterHandler,
		Story:       storyHandler,
		Auth:        authHandler,
		Health:      healthHandler,
		Log:         logHandler,
		ActivityLog: activityLogHandler,
	}
}
