package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

// Сообщения об ошибках запроса.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidCount       = "invalid count parameter"
	ErrMsgRouteNotFound      = "route not found"

	errSendResponse = "error sending response"
)

// statusOf сопоставляет вид ошибки домена с HTTP-статусом.
func statusOf(err error) int {
	switch entities.KindOf(err) {
	case entities.ErrValidation:
		return fiber.StatusBadRequest
	case entities.ErrNotFound:
		return fiber.StatusNotFound
	case entities.ErrConflict:
		return fiber.StatusConflict
	case entities.ErrUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError отправляет ответ с ошибкой домена.
func handleError(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()
	status := statusOf(err)

	log := logger.Log(requestCtx).With(zap.Int("status", status))
	if status >= fiber.StatusInternalServerError {
		log.Error(requestCtx, "request failed", zap.Error(err))
	} else {
		log.Debug(requestCtx, "request rejected", zap.Error(err))
	}

	return sendError(ctx, status, entities.MessageOf(err))
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

// parseID читает положительный идентификатор из параметра пути.
func parseID(ctx fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.NewValidationError("parseID", "invalid %s parameter %q", param, ctx.Params(param))
	}
	return id, nil
}

// ErrorHandler отвечает JSON на ошибки, которые обработчики вернули в fiber.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := entities.ErrInternal.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	logger.Log(ctx.Context()).Error(ctx.Context(), "unhandled request error", zap.Error(err))
	return sendError(ctx, status, message)
}
