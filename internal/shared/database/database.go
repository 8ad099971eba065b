package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps both GORM and sql.DB
type DB struct {
	*sql.DB
	GORM *gorm.DB
}

// NewDB opens a GORM connection. postgres:// and postgresql:// URLs use the
// postgres driver, sqlite://<path> (or file:<path>) uses the pure-Go sqlite driver.
func NewDB(connStr string, debug bool) (*DB, error) {
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	dialector, err := dialectorFor(connStr)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("driver", dialector.Name()).Msg("✅ Database connected (GORM)")
	return &DB{
		DB:   sqlDB,
		GORM: gormDB,
	}, nil
}

func dialectorFor(connStr string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(connStr, "postgres://"), strings.HasPrefix(connStr, "postgresql://"):
		return postgres.Open(connStr), nil
	case strings.HasPrefix(connStr, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(connStr, "sqlite://")), nil
	case strings.HasPrefix(connStr, "file:"):
		return sqlite.Open(connStr), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme")
	}
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	log.Info().Msg("🔌 Closing database connection...")
	return db.DB.Close()
}
