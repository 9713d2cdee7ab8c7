package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware кладет в контекст идентификатор запроса и logger,
// у которого request_id, метод и путь уже записаны в поля.
// Если клиент не передал заголовок, идентификатор генерируется.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		// Строки fiber действительны только до конца запроса.
		requestCtx := logger.NewRequestIDContext(ctx.Context(), strings.Clone(ctx.Get(HeaderRequestID)))
		id, _ := logger.GetRequestID(requestCtx)

		requestLog := logger.Log(requestCtx).ForRequest(requestCtx,
			zap.String("method", strings.Clone(ctx.Method())),
			zap.String("path", strings.Clone(ctx.Path())),
		)

		ctx.SetContext(logger.NewContext(requestCtx, requestLog))
		ctx.Set(HeaderRequestID, id)

		return ctx.Next()
	}
}
