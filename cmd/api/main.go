package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/interfaces/api/middleware"
	"rsvp-backend/interfaces/api/routes"
	"rsvp-backend/pkg/config"
	"rsvp-backend/pkg/di"
	"rsvp-backend/pkg/logger"
)

// bodyLimit leaves room for a 10 MB story image plus multipart overhead.
const bodyLimit = 12 * 1024 * 1024

func main() {
	// The log directory is read before the container so that startup errors are captured.
	logCfg := config.Load().Logging
	if err := logger.Init(logCfg.Dir, logCfg.Console); err != nil {
		fmt.Printf("Warning: Failed to initialize logger: %v\n", err)
	}
	logger.Startup("logger_init", "Logger initialized", map[string]interface{}{"dir": logCfg.Dir})

	container := di.NewContainer()
	if err := container.Initialize(); err != nil {
		logger.StartupError("container_init_failed", "Failed to initialize container", err, nil)
		os.Exit(1)
	}

	setupGracefulShutdown(container)

	cfg := container.GetConfig()
	h := handlers.NewHandlers(container.GetHandlerServices(), container.GetHandlerInfrastructure(), cfg)
	app := newApp(cfg, h, container.AuthService)

	port := cfg.App.Port
	logger.Startup("server_starting", "Server starting", map[string]interface{}{
		"port":        port,
		"environment": cfg.App.Env,
		"health":      fmt.Sprintf("http://localhost:%s/health", port),
		"api":         fmt.Sprintf("http://localhost:%s/api/v1", port),
		"logs_api":    fmt.Sprintf("http://localhost:%s/api/v1/admin/logs", port),
	})

	if err := app.Listen(":" + port); err != nil {
		logger.StartupError("server_failed", "Server failed to start", err, nil)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, h *handlers.Handlers, authService services.AuthService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		BodyLimit:    bodyLimit,
	})

	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.App.CORSOrigins))

	routes.SetupRoutes(app, h, authService, cfg)
	return app
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Startup("shutdown_started", "Gracefully shutting down", nil)

		if err := container.Cleanup(); err != nil {
			logger.StartupError("cleanup_failed", "Error during cleanup", err, nil)
		}

		logger.Startup("shutdown_complete", "Shutdown complete", nil)
		os.Exit(0)
	}()
}
