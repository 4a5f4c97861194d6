package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"rsvp-backend/pkg/scheduler"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Bunny     BunnyConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	CORSOrigins string // comma separated; "*" allows any origin without credentials
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

type RedisConfig struct {
	Enabled        bool
	Host           string
	Port           string
	Password       string
	DB             int
	SearchCacheTTL time.Duration
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// AdminConfig holds the single admin identity. PasswordHash (bcrypt) wins over Password.
type AdminConfig struct {
	Password     string
	PasswordHash string
	CookieSecure bool
}

type BunnyConfig struct {
	StorageZone string
	AccessKey   string
	BaseURL     string
	CDNUrl      string
}

type RateLimitConfig struct {
	Enabled           bool
	MaxRequests       int
	WindowSeconds     int
	AuthMaxRequests   int
	AuthWindowSeconds int
}

type LoggingConfig struct {
	Dir           string
	Console       bool
	Level         string // DEBUG, INFO, WARN, ERROR
	RetentionDays int
}

type SchedulerConfig struct {
	Enabled               bool
	LogRetentionCron      string
	RosterStatsCron       string
	ActivityRetentionCron string
	ActivityRetentionDays int
}

// LoadConfig reads the environment and validates it for serving HTTP.
func LoadConfig() (*Config, error) {
	config := Load()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Load reads the environment without validation. Offline tools that never
// authenticate anyone use it directly.
func Load() *Config {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "RSVP Backend"),
			Port:        getEnv("APP_PORT", "3000"),
			Env:         getEnv("APP_ENV", "development"),
			CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "rsvp"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		Redis: RedisConfig{
			Enabled:        getEnvBool("REDIS_ENABLED", true),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvInt("REDIS_DB", 0),
			SearchCacheTTL: getEnvDuration("SEARCH_CACHE_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			TokenTTL: getEnvDuration("ADMIN_SESSION_TTL", 7*24*time.Hour),
		},
		Admin: AdminConfig{
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			CookieSecure: getEnvBool("ADMIN_COOKIE_SECURE", false),
		},
		Bunny: BunnyConfig{
			StorageZone: getEnv("BUNNY_STORAGE_ZONE", ""),
			AccessKey:   getEnv("BUNNY_ACCESS_KEY", ""),
			BaseURL:     getEnv("BUNNY_BASE_URL", "https://storage.bunnycdn.com"),
			CDNUrl:      getEnv("BUNNY_CDN_URL", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvBool("RATE_LIMIT_ENABLED", true),
			MaxRequests:       getEnvInt("RATE_LIMIT_MAX", 60),
			WindowSeconds:     getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
			AuthMaxRequests:   getEnvInt("AUTH_RATE_LIMIT_MAX", 5),
			AuthWindowSeconds: getEnvInt("AUTH_RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Logging: LoggingConfig{
			Dir:           getEnv("LOG_DIR", "logs"),
			Console:       getEnvBool("LOG_CONSOLE", true),
			Level:         strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
			RetentionDays: getEnvInt("LOG_RETENTION_DAYS", 14),
		},
		Scheduler: SchedulerConfig{
			Enabled:               getEnvBool("SCHEDULER_ENABLED", true),
			LogRetentionCron:      getEnv("LOG_RETENTION_CRON", "0 3 * * *"),
			RosterStatsCron:       getEnv("ROSTER_STATS_CRON", "0 * * * *"),
			ActivityRetentionCron: getEnv("ACTIVITY_RETENTION_CRON", "30 3 * * *"),
			ActivityRetentionDays: getEnvInt("ACTIVITY_RETENTION_DAYS", 90),
		},
	}

	return config
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.Scheduler.Enabled {
		for _, expr := range []string{c.Scheduler.LogRetentionCron, c.Scheduler.RosterStatsCron, c.Scheduler.ActivityRetentionCron} {
			if err := scheduler.ValidateCronExpression(expr); err != nil {
				return fmt.Errorf("scheduler: %w", err)
			}
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
