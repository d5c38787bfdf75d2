package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"userDirectory/internal/config"
	"userDirectory/models"
)

// Options tunes how the connection logs.
type Options struct {
	Logger *logrus.Logger
	Debug  bool // log every statement
}

// Open connects to the database for the given driver and creates any missing
// tables. For sqlite the dsn is a file path or a `file:` URI; an empty path
// falls back to users.db.
func Open(driver, dsn string, opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		if dsn == "" {
			dsn = "users.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	d, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(opts)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if driver == config.DriverSQLite {
		// A single connection keeps in-memory databases alive and serialises writers.
		sqlDB.SetMaxOpenConns(1)
		if err := applyPragmas(d); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	if err := Migrate(d); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Migrate creates the user table with its unique index and length checks.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies the database answers within the context deadline.
func Ping(ctx context.Context, d *gorm.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(d *gorm.DB) error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applyPragmas(d *gorm.DB) error {
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_ = d.Exec(`PRAGMA journal_mode=WAL`).Error
	if err := d.Exec(`PRAGMA busy_timeout=5000`).Error; err != nil {
		return err
	}
	return d.Exec(`PRAGMA foreign_keys=ON`).Error
}

func newLogger(opts Options) logger.Interface {
	if opts.Logger == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	return logger.New(opts.Logger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
