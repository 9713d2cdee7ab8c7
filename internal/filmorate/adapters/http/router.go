// Package http содержит HTTP-транспорт каталога фильмов.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
	"filmorate/internal/filmorate/metrics"
)

// AppName - имя приложения fiber.
const AppName = "filmorate"

// Pinger проверяет доступность зависимости для /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewServer создает приложение fiber с таймаутами из конфигурации.
func NewServer(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// pingers проверяются в /health; для хранилища в памяти их может не быть.
func SetupRouter(server *fiber.App, services *app.Services, pingers ...Pinger) {
	userHandler := NewUserHandler(services.Users, services.Friends)
	filmHandler := NewFilmHandler(services.Films, services.Likes)
	referenceHandler := NewReferenceHandler(services.Reference)

	// Middleware для всех запросов.
	server.Use(middleware.NewRequestIDMiddleware())
	server.Use(middleware.NewLoggerMiddleware())
	server.Use(middleware.NewRecoveryMiddleware())
	server.Use(metrics.Middleware())

	server.Get("/health", healthHandler(pingers))
	server.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	users := server.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/", userHandler.Update)
	users.Get("/:id", userHandler.Get)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/friends", userHandler.Friends)
	users.Get("/:id/friends/common/:otherId", userHandler.CommonFriends)
	users.Put("/:id/friends/:friendId", userHandler.AddFriend)
	users.Delete("/:id/friends/:friendId", userHandler.RemoveFriend)

	// popular регистрируется раньше /:id.
	films := server.Group("/films")
	films.Get("/", filmHandler.List)
	films.Post("/", filmHandler.Create)
	films.Put("/", filmHandler.Update)
	films.Get("/popular", filmHandler.Popular)
	films.Get("/:id", filmHandler.Get)
	films.Delete("/:id", filmHandler.Delete)
	films.Put("/:id/like/:userId", filmHandler.AddLike)
	films.Delete("/:id/like/:userId", filmHandler.RemoveLike)

	server.Get("/genres", referenceHandler.Genres)
	server.Get("/genres/:id", referenceHandler.Genre)
	server.Get("/mpa", referenceHandler.Ratings)
	server.Get("/mpa/:id", referenceHandler.Mpa)

	// Обработчик для несуществующих маршрутов.
	server.Use(func(ctx fiber.Ctx) error {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgRouteNotFound)
	})
}

func healthHandler(pingers []Pinger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		for _, p := range pingers {
			if err := p.Ping(ctx.Context()); err != nil {
				return sendJSON(ctx, fiber.StatusServiceUnavailable, fiber.Map{"status": "unavailable"})
			}
		}
		return sendJSON(ctx, fiber.StatusOK, fiber.Map{"status": "ok"})
	}
}
