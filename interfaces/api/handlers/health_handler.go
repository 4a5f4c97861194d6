package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rsvp-backend/infrastructure/redis"
	"rsvp-backend/infrastructure/storage"
	"rsvp-backend/pkg/scheduler"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db             *gorm.DB
	redisClient    *redis.RedisClient
	bunnyStorage   storage.BunnyStorage
	eventScheduler scheduler.EventScheduler
}

// NewHealthHandler creates a new health handler. Everything but db may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.RedisClient, bunnyStorage storage.BunnyStorage, eventScheduler scheduler.EventScheduler) *HealthHandler {
	return &HealthHandler{
		db:             db,
		redisClient:    redisClient,
		bunnyStorage:   bunnyStorage,
		eventScheduler: eventScheduler,
	}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// JobHealth is the last known outcome of one maintenance job.
type JobHealth struct {
	ID        string     `json:"id"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"lastRun,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	NextRun   *time.Time `json:"nextRun,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Jobs       []JobHealth                `json:"jobs,omitempty"`
}

// Health is the liveness probe.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

// DetailedHealth reports each backing service. Only the database is critical;
// Redis, blob storage and scheduler failures degrade the service without taking it down.
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	dbHealth := h.checkDatabase(ctx)
	redisHealth := h.checkRedis(ctx)
	storageHealth := h.checkStorage(ctx)
	response.Components["database"] = dbHealth
	response.Components["redis"] = redisHealth
	response.Components["storage"] = storageHealth
	schedulerHealth := h.checkScheduler()
	response.Components["scheduler"] = schedulerHealth
	response.Jobs = h.listJobs()

	switch {
	case dbHealth.Status != "ok":
		response.Status = "unhealthy"
	case redisHealth.Status == "error" || storageHealth.Status == "error" || schedulerHealth.Status == "error":
		response.Status = "degraded"
	default:
		response.Status = "healthy"
	}

	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.db == nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database not configured",
		}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Failed to get database connection: " + err.Error(),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redisClient == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Redis not configured",
		}
	}

	if err := h.redisClient.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkStorage(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.bunnyStorage == nil || !h.bunnyStorage.IsConfigured() {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Storage zone not configured",
		}
	}

	if err := h.bunnyStorage.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Storage check failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Reachable",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkScheduler() ComponentHealth {
	if h.eventScheduler == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Scheduler disabled",
		}
	}
	if !h.eventScheduler.IsRunning() {
		return ComponentHealth{
			Status:  "error",
			Message: "Scheduler stopped",
		}
	}
	return ComponentHealth{
		Status:  "ok",
		Message: "Running",
	}
}

func (h *HealthHandler) listJobs() []JobHealth {
	if h.eventScheduler == nil {
		return nil
	}

	infos := h.eventScheduler.ListJobs()
	jobs := make([]JobHealth, len(infos))
	for i, info := range infos {
		jobs[i] = JobHealth{
			ID:        info.ID,
			Schedule:  info.CronExpr,
			LastRun:   info.LastRun,
			LastError: info.LastError,
			NextRun:   info.NextRun,
		}
	}
	return jobs
}
