package postgres

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const userSelect = `
        SELECT user_id, email, login, name, birthday
        FROM user_app`

// UserRepository реализует repositories.UserRepository для PostgreSQL.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет пользователя. ID генерирует база данных.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO user_app (email, login, name, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING user_id
    `

	created := user.Clone()
	created.Friends = nil
	if err := r.pool.QueryRow(ctx, query,
		user.Email, user.Login, user.Name, user.Birthday,
	).Scan(&created.ID); err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, mapError("UserRepository.Create", err)
	}

	return created, nil
}

// Update обновляет поля пользователя.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	const op = "UserRepository.Update"
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE user_app
        SET email = $2, login = $3, name = $4, birthday = $5
        WHERE user_id = $1
    `

	tag, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, mapError(op, err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for update", zap.Int64("id", user.ID))
		return nil, entities.NewNotFoundError(op, "user %d not found", user.ID)
	}

	updated, err := r.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entities.NewNotFoundError(op, "user %d not found", user.ID)
	}
	return updated, nil
}

// FindByID возвращает nil, nil, если пользователь не найден.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	users, err := r.load(ctx, "FindByID", userSelect+" WHERE user_id = $1", id)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}
	return r.load(ctx, "FindByIDs", userSelect+" WHERE user_id = ANY($1) ORDER BY user_id", ids)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	return r.load(ctx, "GetAll", userSelect+" ORDER BY user_id")
}

// Delete удаляет пользователя. Дружба и лайки удаляются каскадно.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	tag, err := r.pool.Exec(ctx, `DELETE FROM user_app WHERE user_id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return false, mapError("UserRepository.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM user_app`); err != nil {
		logger.Log(ctx).Error(ctx, "error clearing users", zap.Error(err))
		return mapError("UserRepository.Clear", err)
	}
	return nil
}

// load читает пользователей и их друзей.
func (r *UserRepository) load(ctx context.Context, method, query string, args ...interface{}) ([]*entities.User, error) {
	op := "UserRepository." + method
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error querying users", zap.Error(err))
		return nil, mapError(op, err)
	}

	users := make([]*entities.User, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday); err != nil {
			rows.Close()
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, mapError(op, err)
		}
		users = append(users, &user)
		ids = append(ids, user.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, mapError(op, err)
	}
	if len(users) == 0 {
		return users, nil
	}

	friendRows, err := r.pool.Query(ctx, `
        SELECT user_id, friend_id
        FROM friend_user
        WHERE user_id = ANY($1)
        ORDER BY user_id, friend_id
    `, ids)
	if err != nil {
		log.Error(ctx, "error querying friends", zap.Error(err))
		return nil, mapError(op, err)
	}
	friends, err := collectPairs(friendRows)
	if err != nil {
		log.Error(ctx, "error scanning friends", zap.Error(err))
		return nil, mapError(op, err)
	}
	for _, user := range users {
		user.Friends = friends[user.ID]
	}

	return users, nil
}
