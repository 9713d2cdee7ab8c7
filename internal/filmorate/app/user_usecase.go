// Package app содержит прикладной слой каталога: сценарии пользователей, фильмов,
// дружбы, лайков и справочников.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodCreateUser = "CreateUser"
	methodUpdateUser = "UpdateUser"
	methodGetUser    = "GetUser"
	methodListUsers  = "ListUsers"
	methodDeleteUser = "DeleteUser"

	msgCreatingUser = "creating user"
	msgUserCreated  = "user created"
	msgUpdatingUser = "updating user"
	msgUserUpdated  = "user updated"
	msgUserDeleted  = "user deleted"
	msgInvalidUser  = "invalid user"

	msgErrCreateUser = "failed to create user"
	msgErrUpdateUser = "failed to update user"
	msgErrFindUser   = "failed to find user"
	msgErrListUsers  = "failed to list users"
	msgErrDeleteUser = "failed to delete user"

	msgUserNotFound = "user %d not found"
)

// UserUseCaseImpl реализует api.UserService.
type UserUseCaseImpl struct {
	users   repositories.UserRepository
	popular cache.PopularCache
	now     func() time.Time
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
// Кэш рейтинга сбрасывается при удалении пользователя, так как удаляются его лайки.
func NewUserUseCase(users repositories.UserRepository, popular cache.PopularCache) api.UserService {
	return &UserUseCaseImpl{
		users:   users,
		popular: popular,
		now:     time.Now,
	}
}

// Create проверяет и сохраняет нового пользователя.
func (u *UserUseCaseImpl) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("login", user.Login))
	log.Debug(ctx, msgCreatingUser)

	candidate := user.Clone()
	if err := validateUser("UserService.Create", candidate, u.now()); err != nil {
		log.Debug(ctx, msgInvalidUser, zap.Error(err))
		return nil, err
	}

	created, err := u.users.Create(ctx, candidate)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgUserCreated, zap.Int64("id", created.ID))
	return created, nil
}

// Update заменяет поля существующего пользователя. Пустое имя заменяется логином.
func (u *UserUseCaseImpl) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	const op = "UserService.Update"
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.Int64("id", user.ID))
	log.Debug(ctx, msgUpdatingUser)

	if user.ID <= 0 {
		return nil, entities.NewValidationError(op, msgMissingID)
	}
	candidate := user.Clone()
	if err := validateUser(op, candidate, u.now()); err != nil {
		log.Debug(ctx, msgInvalidUser, zap.Error(err))
		return nil, err
	}

	updated, err := u.users.Update(ctx, candidate)
	if err != nil {
		if !entities.IsNotFound(err) {
			log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		}
		return nil, err
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// Get возвращает пользователя или ErrNotFound.
func (u *UserUseCaseImpl) Get(ctx context.Context, id int64) (*entities.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrFindUser, zap.String("method", methodGetUser), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, entities.NewNotFoundError("UserService.Get", msgUserNotFound, id)
	}
	return user, nil
}

func (u *UserUseCaseImpl) List(ctx context.Context) ([]*entities.User, error) {
	users, err := u.users.GetAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListUsers, zap.String("method", methodListUsers), zap.Error(err))
		return nil, err
	}
	return users, nil
}

// Delete удаляет пользователя вместе с его дружбой и лайками.
func (u *UserUseCaseImpl) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("id", id))

	deleted, err := u.users.Delete(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return err
	}
	if !deleted {
		return entities.NewNotFoundError("UserService.Delete", msgUserNotFound, id)
	}
	invalidatePopular(ctx, u.popular)

	log.Info(ctx, msgUserDeleted)
	return nil
}
