package di

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rsvp-backend/application/serviceimpl"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/infrastructure/postgres"
	"rsvp-backend/infrastructure/redis"
	"rsvp-backend/infrastructure/storage"
	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/pkg/config"
	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure. RedisClient is nil when Redis is disabled or unreachable.
	DB             *gorm.DB
	RedisClient    *redis.RedisClient
	BunnyStorage   storage.BunnyStorage
	EventScheduler scheduler.EventScheduler

	// Repositories
	GuestRepository       repositories.GuestRepository
	StoryRepository       repositories.StoryRepository
	ActivityLogRepository repositories.ActivityLogRepository
	GuestSearchCache      repositories.GuestSearchCache
	SessionRevocations    repositories.SessionRevocationStore

	// Services
	GuestService       services.GuestService
	RsvpService        services.RsvpService
	RosterService      services.RosterService
	StoryService       services.StoryService
	AuthService        services.AuthService
	ActivityLogService services.ActivityLogService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.SetMinLevel(logger.Level(cfg.Logging.Level))
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{
		"environment": cfg.App.Env,
	})
	return nil
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(DatabaseConfig(c.Config))
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Redis is optional: without it search is uncached and logout cannot revoke tokens.
	if c.Config.Redis.Enabled {
		client := redis.NewRedisClient(redis.RedisConfig{
			Host:     c.Config.Redis.Host,
			Port:     c.Config.Redis.Port,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err := client.Ping(context.Background()); err != nil {
			logger.StartupWarn("redis_connection_failed", "Redis connection failed, continuing without cache", map[string]interface{}{"error": err.Error()})
			_ = client.Close()
		} else {
			c.RedisClient = client
			logger.Startup("redis_connected", "Redis connected", nil)
		}
	} else {
		logger.StartupWarn("redis_disabled", "Redis disabled, search cache and session revocation are off", nil)
	}

	c.BunnyStorage = storage.NewBunnyStorage(storage.BunnyConfig{
		StorageZone: c.Config.Bunny.StorageZone,
		AccessKey:   c.Config.Bunny.AccessKey,
		BaseURL:     c.Config.Bunny.BaseURL,
		CDNUrl:      c.Config.Bunny.CDNUrl,
	})
	if c.BunnyStorage.IsConfigured() {
		logger.Startup("bunny_storage_initialized", "Bunny Storage initialized", nil)
	} else {
		logger.StartupWarn("bunny_storage_not_configured", "Bunny Storage not configured, story uploads are disabled", nil)
	}

	return nil
}

// DatabaseConfig maps the app config onto the postgres connection settings.
func DatabaseConfig(cfg *config.Config) postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: strings.ToLower(cfg.Database.LogLevel),
	}
}

func (c *Container) initRepositories() error {
	c.GuestRepository = postgres.NewGuestRepository(c.DB)
	c.StoryRepository = postgres.NewStoryRepository(c.DB)
	c.ActivityLogRepository = postgres.NewActivityLogRepository(c.DB)

	if c.RedisClient != nil {
		c.GuestSearchCache = redis.NewGuestSearchCache(c.RedisClient, c.Config.Redis.SearchCacheTTL)
		c.SessionRevocations = redis.NewSessionRevocationStore(c.RedisClient)
	}

	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	c.ActivityLogService = serviceimpl.NewActivityLogService(c.ActivityLogRepository)
	c.GuestService = serviceimpl.NewGuestService(c.GuestRepository, c.GuestSearchCache)
	c.RsvpService = serviceimpl.NewRsvpService(c.GuestRepository, c.GuestSearchCache, c.ActivityLogService)
	c.RosterService = serviceimpl.NewRosterService(c.GuestRepository, c.GuestService, c.GuestSearchCache, c.ActivityLogService)
	c.StoryService = serviceimpl.NewStoryService(c.StoryRepository, c.BunnyStorage, c.ActivityLogService)
	c.AuthService = serviceimpl.NewAuthService(serviceimpl.AuthConfig{
		JWTSecret:    c.Config.JWT.Secret,
		TokenTTL:     c.Config.JWT.TokenTTL,
		PasswordHash: c.Config.Admin.PasswordHash,
		Password:     c.Config.Admin.Password,
	}, c.SessionRevocations)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	if !c.Config.Scheduler.Enabled {
		logger.StartupWarn("scheduler_disabled", "Scheduler disabled, maintenance jobs will not run", nil)
		return nil
	}

	c.EventScheduler = scheduler.NewEventScheduler()
	c.scheduleMaintenanceJobs()

	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", nil)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	if c.EventScheduler != nil {
		if c.EventScheduler.IsRunning() {
			c.EventScheduler.Stop()
			logger.Startup("scheduler_stopped", "Event scheduler stopped", nil)
		} else {
			logger.Startup("scheduler_already_stopped", "Event scheduler was already stopped", nil)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		GuestService:       c.GuestService,
		RsvpService:        c.RsvpService,
		RosterService:      c.RosterService,
		StoryService:       c.StoryService,
		AuthService:        c.AuthService,
		ActivityLogService: c.ActivityLogService,
	}
}

func (c *Container) GetHandlerInfrastructure() *handlers.Infrastructure {
	return &handlers.Infrastructure{
		DB:             c.DB,
		RedisClient:    c.RedisClient,
		BunnyStorage:   c.BunnyStorage,
		EventScheduler: c.EventScheduler,
	}
}
