// Package config содержит конфигурацию сервиса каталога.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading filmorate service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	LogEnvFileSkipped   = "Failed to read .env file, using process environment"
	ErrFailedLoadConfig = "Failed to load configuration"
	ErrInvalidStorage   = "unsupported storage backend"
)

// Хранилища данных.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// EnvFile - необязательный файл с переменными окружения.
const EnvFile = ".env"

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Storage  string         `yaml:"storage" env:"FILMORATE_STORAGE" env-default:"memory"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из .env (если он есть) и переменных окружения.
// Переменные процесса имеют приоритет над значениями из .env.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn(ctx, LogEnvFileSkipped, zap.Error(err))
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("storage", cfg.Storage),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Int("reference_cache_size", cfg.Cache.Size))

	return &cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
		return nil
	default:
		return fmt.Errorf("%s: %q", ErrInvalidStorage, c.Storage)
	}
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
