// Package main реализует точку входа сервиса каталога фильмов.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/cache"
	filmhttp "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/adapters/postgres"
	"filmorate/internal/filmorate/adapters/reference"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
	"filmorate/internal/filmorate/db"
	portcache "filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/db/redis"
	"filmorate/pkg/logger"
	"filmorate/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "FILMORATE_LOGGER_MODE"
	EnvLoggerLevel = "FILMORATE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "filmorate service started"
	LogServiceShutdownDone = "filmorate service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing popular films cache"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage", cfg.Storage),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		// closers освобождают хранилища после остановки HTTP сервера.
		var closers []shutdown.Hook
		var pingers []filmhttp.Pinger

		log.Info(ctx, LogInitRepo)
		var repoFactory repositories.Factory
		switch cfg.Storage {
		case config.StoragePostgres:
			database, err := db.New(ctx, &cfg.Postgres)
			if err != nil {
				log.Error(ctx, ErrInitDB, zap.Error(err))
				exitCode = 1
				return
			}
			repoFactory = postgres.NewRepositoryFactory(database.Pool())
			pingers = append(pingers, database)
			closers = append(closers, func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			})
		default:
			repoFactory = memory.NewRepositoryFactory()
		}
		repoFactory = reference.NewFactory(repoFactory, cfg.Cache.Size, cfg.Cache.TTL)

		log.Info(ctx, LogInitCache, zap.Bool("redis_enabled", cfg.Redis.Enabled))
		var popularCache portcache.PopularCache = cache.NewNoopPopularCache()
		if cfg.Redis.Enabled {
			client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				_ = shutdown.Sequence(closers...)(ctx)
				exitCode = 1
				return
			}
			popularCache = cache.NewRedisPopularCache(client, cfg.Redis.KeyPrefix, cfg.Redis.PopularTTL)
		}
		closers = append(closers, func(ctx context.Context) error {
			log.Info(ctx, LogClosingCache)
			return popularCache.Close()
		})

		log.Info(ctx, LogInitServices)
		services := app.NewServices(repoFactory, popularCache)

		log.Info(ctx, LogInitHTTPServer)
		server := filmhttp.NewServer(&cfg.HTTP)
		filmhttp.SetupRouter(server, services, pingers...)

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		listenErr := runServer(runCtx, cancel, func() error {
			return server.Listen(cfg.HTTP.GetAddress())
		})

		stopHTTP := func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		}
		shutdown.Wait(runCtx, cfg.Shutdown.GetTimeout(),
			shutdown.Sequence(append([]shutdown.Hook{stopHTTP}, closers...)...))

		select {
		case <-listenErr:
			exitCode = 1
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
