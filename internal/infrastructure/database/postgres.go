package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OmarEhab007/cargoparts-sub000/internal/infrastructure/repositories"
)

// Open creates a new database connection.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates or updates the auth tables. Casbin's policy table is
// created separately by the gorm adapter.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBOTPCode{},
		&repositories.DBSession{},
		&repositories.DBStore{},
	); err != nil {
		return fmt.Errorf("failed to migrate auth tables: %w", err)
	}
	return nil
}
