// Package redis connects to the Redis instance backing the quote cache.
package redis

import (
	"context"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LoadConfig reads REDIS_HOST (default "redis"), REDIS_PORT (default "6379") and REDIS_PASSWORD.
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Host == "" {
		cfg.Host = "redis"
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	return cfg
}

// NewClient creates a client without contacting Redis. Connections are dialed
// per command, so the client starts working once Redis becomes reachable.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          0,
		DialTimeout: 3 * time.Second,
	})
}

// NewRedisClient creates a client and verifies the connection with PING.
// On failure the client is closed and the error returned.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := NewClient(cfg)

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
