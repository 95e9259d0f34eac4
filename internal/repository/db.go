package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	Driver          string // inferred from DSN when empty
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// InferDriver guesses the sql driver from the DSN shape. MySQL DSNs follow
// the go-sql-driver form (user:pass@tcp(host)/db), Postgres uses a URL, and
// everything file-like falls back to the embedded SQLite driver.
func InferDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		return "pgx"
	case strings.HasPrefix(dsn, "mysql://"):
		return "mysql"
	case strings.Contains(dsn, "@tcp(") || strings.Contains(dsn, "@unix("):
		return "mysql"
	default:
		return "sqlite"
	}
}

// Open opens the relational store. The connection pool is the only lifecycle
// here: one handle acquired fresh per interaction from the pool, released on
// every exit path by the callers' defers.
func Open(cfg Config, logger *slog.Logger) (*sql.DB, string, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = InferDriver(cfg.DSN)
	}
	dsn := cfg.DSN
	// go-sql-driver does not accept a scheme prefix
	dsn = strings.TrimPrefix(dsn, "mysql://")

	logger.Info("opening database", "driver", driver)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		logger.Error("failed to open database", "driver", driver, "error", err)
		return nil, "", err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, driver, nil
}

// HealthCheck pings the store to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		return err
	}
	logger.Debug("database ping successful")
	return nil
}

// Close closes the database pool gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	logger.Info("closing database")
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
}
