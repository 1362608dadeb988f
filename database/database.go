package database

import (
	"fmt"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/attendance"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/campaign"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/donation"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/notification"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the postgres connection string from config.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

// Connect opens the postgres pool. Driver errors are translated so services
// can match gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.AppEnv == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	utils.Log.Info("database connected", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate creates or updates every table, referenced tables first.
func Migrate(db *gorm.DB) error {
	utils.Log.Info("running database migrations")
	err := db.AutoMigrate(
		&auth.User{},
		&guest.Guest{},
		&event.Event{},
		&event.Invitation{},
		&campaign.Bank{},
		&campaign.Campaign{},
		&donation.Donation{},
		&attendance.Link{},
		&notification.Notification{},
		&notification.DeviceToken{},
		&auditlog.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
