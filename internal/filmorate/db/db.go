// Package db подготавливает базу данных каталога: миграции и пул соединений.
package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/config"
	migrations "filmorate/migrations/filmorate"
	"filmorate/pkg/db/postgres"
	"filmorate/pkg/logger"
	"filmorate/pkg/retry"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing filmorate database"
	LogDBInitialized     = "filmorate database initialized successfully"
	LogMigrationStarting = "starting database migrations for filmorate service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply filmorate database migrations"
	ErrDBConnection = "failed to connect to filmorate database"
)

const (
	retryConnect   = "postgres connect"
	retryMigrate   = "postgres migrate"
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// New применяет миграции и открывает пул соединений.
// Обе операции повторяются cfg.ConnectAttempts раз: база может подниматься дольше сервиса.
func New(ctx context.Context, cfg *config.PostgresConfig) (*postgres.Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	retryCfg := retryConfig(cfg.ConnectAttempts)

	log.Info(ctx, LogMigrationStarting)
	err := retry.Do(ctx, retryMigrate, retryCfg, func(ctx context.Context) error {
		return postgres.Migrate(ctx, migrations.FS, migrations.Dir, cfg.GetConnectionURL())
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	var database *postgres.Database
	err = retry.Do(ctx, retryConnect, retryCfg, func(ctx context.Context) error {
		var connErr error
		database, connErr = postgres.New(ctx, cfg.GetDSN(), cfg.PoolOptions())
		return connErr
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return database, nil
}

func retryConfig(attempts int) retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialBackoff = initialBackoff
	cfg.MaxBackoff = maxBackoff
	return cfg
}
