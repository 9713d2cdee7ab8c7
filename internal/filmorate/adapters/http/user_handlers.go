package http

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/pkg/logger"
)

// Параметры пути.
const (
	paramID       = "id"
	paramFriendID = "friendId"
	paramOtherID  = "otherId"
	paramUserID   = "userId"
)

// UserHandler обрабатывает запросы пользователей и дружбы.
type UserHandler struct {
	users   api.UserService
	friends api.FriendService
}

// NewUserHandler создает обработчик пользователей.
func NewUserHandler(users api.UserService, friends api.FriendService) *UserHandler {
	return &UserHandler{users: users, friends: friends}
}

// List возвращает всех пользователей.
func (h *UserHandler) List(ctx fiber.Ctx) error {
	users, err := h.users.List(ctx.Context())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewUserResponses(users))
}

// Get возвращает пользователя по id.
func (h *UserHandler) Get(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	user, err := h.users.Get(ctx.Context(), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewUserResponse(user))
}

// Create создает пользователя.
func (h *UserHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	user, err := h.users.Create(requestCtx, req.ToEntity())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.NewUserResponse(user))
}

// Update обновляет пользователя; id передается в теле.
func (h *UserHandler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	user, err := h.users.Update(requestCtx, req.ToEntity())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewUserResponse(user))
}

// Delete удаляет пользователя вместе с его связями.
func (h *UserHandler) Delete(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	if err := h.users.Delete(ctx.Context(), id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// AddFriend добавляет взаимную дружбу и возвращает друзей пользователя.
func (h *UserHandler) AddFriend(ctx fiber.Ctx) error {
	userID, friendID, err := parsePair(ctx, paramID, paramFriendID)
	if err != nil {
		return handleError(ctx, err)
	}
	ids, err := h.friends.AddFriend(ctx.Context(), userID, friendID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.IDs(ids))
}

// RemoveFriend удаляет дружбу в обе стороны.
func (h *UserHandler) RemoveFriend(ctx fiber.Ctx) error {
	userID, friendID, err := parsePair(ctx, paramID, paramFriendID)
	if err != nil {
		return handleError(ctx, err)
	}
	ids, err := h.friends.RemoveFriend(ctx.Context(), userID, friendID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.IDs(ids))
}

// Friends возвращает друзей пользователя.
func (h *UserHandler) Friends(ctx fiber.Ctx) error {
	id, err := parseID(ctx, paramID)
	if err != nil {
		return handleError(ctx, err)
	}
	friends, err := h.friends.ListFriends(ctx.Context(), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewUserResponses(friends))
}

// CommonFriends возвращает общих друзей двух пользователей.
func (h *UserHandler) CommonFriends(ctx fiber.Ctx) error {
	userID, otherID, err := parsePair(ctx, paramID, paramOtherID)
	if err != nil {
		return handleError(ctx, err)
	}
	common, err := h.friends.ListCommonFriends(ctx.Context(), userID, otherID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.NewUserResponses(common))
}

func parsePair(ctx fiber.Ctx, first, second string) (int64, int64, error) {
	a, err := parseID(ctx, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseID(ctx, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
