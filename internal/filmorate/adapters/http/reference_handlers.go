package http

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/ports/api"
)

// ReferenceHandler отдает справочники жанров и рейтингов.
type ReferenceHandler struct {
	reference api.ReferenceService
}

func NewReferenceHandler(reference api.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

func (h *ReferenceHandler) Genres(ctx fiber.Ctx) error {
	genres, err := h.reference.Genres(ctx.Context())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewGenreDTOs(genres))
}

func (h *ReferenceHandler) Genre(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	genre, err := h.reference.Genre(ctx.Context(), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewGenreDTO(*genre))
}

func (h *ReferenceHandler) Ratings(ctx fiber.Ctx) error {
	ratings, err := h.reference.Ratings(ctx.Context())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewMpaDTOs(ratings))
}

func (h *ReferenceHandler) Mpa(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	mpa, err := h.reference.Mpa(ctx.Context(), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewMpaDTO(*mpa))
}
