// Package repo implements the data persistence layer for leave records,
// backed by GORM. This file contains database bootstrapping: DSN dispatch
// between Postgres (production) and SQLite (local/dev), pool settings, and
// the idempotent schema ensure.
package repo

import (
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tbourn/go-holiday-bot/internal/domain"
)

// Open connects to the store identified by dsn. A postgres:// or
// postgresql:// URL selects the Postgres driver; anything else is treated
// as a SQLite file path (pure-Go driver, handy for local runs and tests).
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		tunePool(db)
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA busy_timeout=5000;")
	tunePool(db)
	return db, nil
}

func tunePool(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

// EnsureSchema creates the leaves table and its date index when absent.
// It is idempotent and cheap enough to retry; callers cache success as an
// optimization, not for correctness.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Leave{})
}
