package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rsvp-backend/domain/models"
	applogger "rsvp-backend/pkg/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string // silent, error, warn, info
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), NewGormConfig(config.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// NewGormConfig is shared by every dialector so that unique violations surface
// as gorm.ErrDuplicatedKey regardless of the driver.
func NewGormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Guest{},
		&models.Story{},
		&models.ActivityLog{},
	); err != nil {
		return fmt.Errorf("failed to run auto migrations: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		runSearchIndexMigrations(db)
	}

	return nil
}

// runSearchIndexMigrations adds trigram indexes backing the substring search.
// They only speed things up, so a missing pg_trgm extension is not fatal.
func runSearchIndexMigrations(db *gorm.DB) {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS idx_guests_name_trgm ON guests USING gin (lower(name) gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_email_trgm ON guests USING gin (lower(email) gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_phone_trgm ON guests USING gin (lower(phone) gin_trgm_ops)`,
	}

	for _, sql := range migrations {
		if err := db.Exec(sql).Error; err != nil {
			applogger.StartupWarn("search_index_migration_skipped", "Search index migration skipped", map[string]interface{}{
				"statement": sql,
				"error":     err.Error(),
			})
			return
		}
	}
}
