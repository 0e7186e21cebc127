package storage

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PoolConfig tunes the sql connection pool behind the gorm handle. sqlite
// serializes writers on the file lock, so the defaults keep a single open
// connection instead of letting writers pile up on SQLITE_BUSY.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

func applyPool(db *gorm.DB, config *PoolConfig) error {
	if config == nil {
		config = DefaultPoolConfig()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get storage handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)
	return nil
}
