// Package database provides database connection and migration functionality
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"travelcast.app/config"
	"travelcast.app/models"
)

// InitDB initializes the history store connection for the configured driver
func InitDB(config config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "postgres":
		dialector = postgres.Open(config.GetDSN())
	default:
		dialector = sqlite.Open(config.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// RunMigrations executes database schema migrations
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.HistoryRecord{},
	)
}

// CloseDB safely closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
