package database

import (
	"fmt"
	"sync"

	"github.com/bilgisen/fortune-news/internal/config"
	"github.com/bilgisen/fortune-news/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	once       sync.Once
	handle     *gorm.DB
	initialErr error
)

// Connect opens the process-wide database handle. The handle is created
// once and reused by every request; connection pooling is left to the
// database/sql pool that GORM manages internally.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	once.Do(func() {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			initialErr = fmt.Errorf("failed to connect to database: %w", err)
			return
		}

		if err := db.AutoMigrate(&models.News{}); err != nil {
			initialErr = fmt.Errorf("failed to run migrations: %w", err)
			return
		}

		handle = db
	})
	return handle, initialErr
}

// Ping verifies database liveness for the health endpoint.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
