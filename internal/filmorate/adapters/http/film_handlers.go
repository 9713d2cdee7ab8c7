package http

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/pkg/logger"
)

const queryCount = "count"

// FilmHandler обрабатывает запросы фильмов и лайков.
type FilmHandler struct {
	films api.FilmService
	likes api.LikeService
}

// NewFilmHandler создает обработчик фильмов.
func NewFilmHandler(films api.FilmService, likes api.LikeService) *FilmHandler {
	return &FilmHandler{films: films, likes: likes}
}

func (h *FilmHandler) List(ctx fiber.Ctx) error {
	films, err := h.films.List(ctx.Context())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewFilmResponses(films))
}

func (h *FilmHandler) Get(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	film, err := h.films.Get(ctx.Context(), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewFilmResponse(film))
}

func (h *FilmHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var req dto.FilmRequest
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	film, err := h.films.Create(requestCtx, req.ToEntity())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.NewFilmResponse(film))
}

func (h *FilmHandler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var req dto.FilmRequest
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	film, err := h.films.Update(requestCtx, req.ToEntity())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewFilmResponse(film))
}

func (h *FilmHandler) Delete(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	if err := h.films.Delete(ctx.Context(), id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// AddLike ставит лайк и возвращает идентификаторы всех, кто лайкнул фильм.
func (h *FilmHandler) AddLike(ctx fiber.Ctx) error {
	filmID, userID, err := parsePair(ctx, paramID, paramUserID)
	if err != nil {
		return handleError(ctx, err)
	}
	ids, err := h.likes.AddLike(ctx.Context(), filmID, userID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.IDs(ids))
}

func (h *FilmHandler) RemoveLike(ctx fiber.Ctx) error {
	filmID, userID, err := parsePair(ctx, paramID, paramUserID)
	if err != nil {
		return handleError(ctx, err)
	}
	ids, err := h.likes.RemoveLike(ctx.Context(), filmID, userID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.IDs(ids))
}

// Popular возвращает самые популярные фильмы. Без count используется значение по умолчанию.
func (h *FilmHandler) Popular(ctx fiber.Ctx) error {
	count := 0
	if raw := ctx.Query(queryCount); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidCount)
		}
		count = parsed
	}

	films, err := h.likes.Popular(ctx.Context(), count)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewFilmResponses(films))
}
