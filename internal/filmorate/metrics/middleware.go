package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
)

// unmatchedRoute - лейбл path для запросов без маршрута.
const unmatchedRoute = "unmatched"

// Middleware собирает количество и длительность HTTP-запросов.
// В лейбл path попадает шаблон маршрута, а не фактический путь.
func Middleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		path := unmatchedRoute
		if route := ctx.Route(); route != nil && route.Path != "" && route.Path != "/" {
			path = route.Path
		}
		method := ctx.Method()

		HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
