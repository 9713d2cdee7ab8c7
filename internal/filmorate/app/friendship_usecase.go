package app

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodAddFriend         = "AddFriend"
	methodRemoveFriend      = "RemoveFriend"
	methodListFriends       = "ListFriends"
	methodListCommonFriends = "ListCommonFriends"

	msgFriendAdded   = "friend added"
	msgFriendRemoved = "friend removed"

	msgErrAddFriend     = "failed to add friend"
	msgErrRemoveFriend  = "failed to remove friend"
	msgErrListFriends   = "failed to list friends"
	msgErrResolveFriend = "failed to resolve friends"
)

// FriendshipUseCaseImpl реализует api.FriendService.
// Дружба симметрична: обе стороны связи пишутся и удаляются вместе.
type FriendshipUseCaseImpl struct {
	users   repositories.UserRepository
	friends repositories.FriendRepository
}

// NewFriendshipUseCase создает новый экземпляр сервиса дружбы.
func NewFriendshipUseCase(users repositories.UserRepository, friends repositories.FriendRepository) api.FriendService {
	return &FriendshipUseCaseImpl{
		users:   users,
		friends: friends,
	}
}

// AddFriend связывает двух пользователей и возвращает друзей userID.
func (f *FriendshipUseCaseImpl) AddFriend(ctx context.Context, userID, friendID int64) (ids []int64, err error) {
	const op = "FriendService.AddFriend"
	log := logger.Log(ctx).With(
		zap.String("method", methodAddFriend),
		zap.Int64("user_id", userID),
		zap.Int64("friend_id", friendID),
	)
	defer func() {
		metrics.FriendshipOperationsTotal.WithLabelValues("add", metrics.Result(err)).Inc()
	}()

	if userID == friendID {
		return nil, entities.NewValidationError(op, msgSelfFriendship)
	}

	if err := f.friends.AddFriendship(ctx, userID, friendID); err != nil {
		logFailure(ctx, log, msgErrAddFriend, err)
		return nil, err
	}

	ids, err = f.friends.FriendIDs(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListFriends, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgFriendAdded)
	return ids, nil
}

// RemoveFriend разрывает связь. Отсутствие связи не считается ошибкой.
func (f *FriendshipUseCaseImpl) RemoveFriend(ctx context.Context, userID, friendID int64) (ids []int64, err error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRemoveFriend),
		zap.Int64("user_id", userID),
		zap.Int64("friend_id", friendID),
	)
	defer func() {
		metrics.FriendshipOperationsTotal.WithLabelValues("remove", metrics.Result(err)).Inc()
	}()

	if err := f.friends.RemoveFriendship(ctx, userID, friendID); err != nil {
		logFailure(ctx, log, msgErrRemoveFriend, err)
		return nil, err
	}

	ids, err = f.friends.FriendIDs(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListFriends, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgFriendRemoved)
	return ids, nil
}

// ListFriends возвращает друзей пользователя по возрастанию ID.
func (f *FriendshipUseCaseImpl) ListFriends(ctx context.Context, userID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListFriends), zap.Int64("user_id", userID))

	ids, err := f.friends.FriendIDs(ctx, userID)
	if err != nil {
		logFailure(ctx, log, msgErrListFriends, err)
		return nil, err
	}
	return f.resolve(ctx, log, ids)
}

// ListCommonFriends возвращает пересечение друзей двух пользователей.
func (f *FriendshipUseCaseImpl) ListCommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodListCommonFriends),
		zap.Int64("user_id", userID),
		zap.Int64("other_id", otherID),
	)

	ids, err := f.friends.CommonFriendIDs(ctx, userID, otherID)
	if err != nil {
		logFailure(ctx, log, msgErrListFriends, err)
		return nil, err
	}
	return f.resolve(ctx, log, ids)
}

// resolve загружает пользователей по ID. Удаленные за время запроса пропускаются.
func (f *FriendshipUseCaseImpl) resolve(ctx context.Context, log *logger.Logger, ids []int64) ([]*entities.User, error) {
	users, err := f.users.FindByIDs(ctx, ids)
	if err != nil {
		log.Error(ctx, msgErrResolveFriend, zap.Error(err))
		return nil, err
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, nil
}

// logFailure пишет ожидаемые ошибки клиента на уровне debug, остальные на уровне error.
func logFailure(ctx context.Context, log *logger.Logger, msg string, err error) {
	switch entities.KindOf(err) {
	case entities.ErrValidation, entities.ErrNotFound, entities.ErrConflict:
		log.Debug(ctx, msg, zap.Error(err))
	default:
		log.Error(ctx, msg, zap.Error(err))
	}
}
