package database

import (
	"fmt"
	"log/slog"

	"restaurant-hub/internal/config"
	"restaurant-hub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the in-memory store, migrates the schema and seeds the
// fixtures. Every process starts from the same fixture state; nothing written
// afterwards outlives the process.
func Open(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// A shared-cache memory database disappears with its last connection and
	// serializes writers anyway.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	if err := Seed(db, cfg.BcryptCost); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	log.Info("store ready", "dsn", cfg.DatabaseDSN)
	return db, nil
}
