// Package db opens the log store used for the search history.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	historyadapters "stock_quote/internal/feature/history/adapters"
)

const (
	// DriverSQLite stores the history in a local SQLite file (default).
	DriverSQLite = "sqlite"
	// DriverPostgres stores the history in PostgreSQL.
	DriverPostgres = "postgres"

	// DefaultPath is the SQLite file used when DB_PATH is not set.
	DefaultPath = "/data/quotes.db"
	// ConnectTimeout bounds how long startup waits for the database.
	ConnectTimeout = 60 * time.Second
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// ErrUnknownDriver is returned for an unsupported DB_DRIVER value.
var ErrUnknownDriver = errors.New("unknown database driver")

// Config holds log store settings.
type Config struct {
	Driver string // DriverSQLite or DriverPostgres
	Path   string // SQLite file path
	DSN    string // PostgreSQL connection string
}

// Opener opens a gorm connection for a dialector. It is replaced in tests.
type Opener func(d gorm.Dialector) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver: os.Getenv("DB_DRIVER"),
		Path:   os.Getenv("DB_PATH"),
		DSN:    os.Getenv("DB_DSN"),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return cfg
}

// BuildDialector returns the gorm dialector for cfg.Driver.
func BuildDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return sqlite.Open(cfg.Path), nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("DB_DSN is required for postgres")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// ConnectWithRetry は接続に成功するかtimeoutを過ぎるまで接続を繰り返します。
func ConnectWithRetry(d gorm.Dialector, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(d)
		if err == nil {
			return db, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB opens the log store and creates the search_history table if needed.
func OpenDB(cfg Config) (*gorm.DB, error) {
	if cfg.Driver == DriverSQLite || cfg.Driver == "" {
		if dir := filepath.Dir(cfg.Path); dir != "" && cfg.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	}

	d, err := BuildDialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(d, ConnectTimeout, func(d gorm.Dialector) (*gorm.DB, error) {
		return gorm.Open(d, &gorm.Config{})
	})
	if err != nil {
		return nil, err
	}

	// マイグレーション（検索履歴テーブル）
	if err := db.AutoMigrate(&historyadapters.SearchHistoryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

// Ping reports whether the log store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
