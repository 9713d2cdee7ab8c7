package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// Статус строки дружбы. Дружба подтверждается сразу при создании.
const friendStatusConfirmed = "CONFIRMED"

// ensureUsers возвращает ErrNotFound для первого отсутствующего пользователя.
func ensureUsers(ctx context.Context, q querier, op string, ids ...int64) error {
	rows, err := q.Query(ctx, `SELECT user_id FROM user_app WHERE user_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	found, err := collectIDs(rows)
	if err != nil {
		return err
	}

	existing := make(map[int64]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return entities.NewNotFoundError(op, "user %d not found", id)
		}
	}
	return nil
}

// ensureFilm возвращает ErrNotFound, если фильма нет.
func ensureFilm(ctx context.Context, q querier, op string, id int64) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM film WHERE film_id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return entities.NewNotFoundError(op, "film %d not found", id)
	}
	return nil
}

// FriendRepository хранит дружбу парами направленных строк.
type FriendRepository struct {
	pool PgxPoolInterface
}

// NewFriendRepository создает новый экземпляр репозитория дружбы.
func NewFriendRepository(pool PgxPoolInterface) repositories.FriendRepository {
	return &FriendRepository{pool: pool}
}

// AddFriendship записывает оба направления одной командой в транзакции.
// Строки вставляются в едином порядке, чтобы встречные запросы не взаимоблокировались.
func (r *FriendRepository) AddFriendship(ctx context.Context, userID, friendID int64) error {
	const op = "FriendRepository.AddFriendship"
	log := logger.Log(ctx).With(zap.String("repository", "friend"), zap.String("method", "AddFriendship"))

	low, high := userID, friendID
	if low > high {
		low, high = high, low
	}

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := ensureUsers(ctx, tx, op, userID, friendID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
        INSERT INTO friend_user (user_id, friend_id, status_friend)
        VALUES ($1, $2, $3), ($2, $1, $3)
        ON CONFLICT DO NOTHING
    `, low, high, friendStatusConfirmed)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return entities.NewConflictError(op, "user %d is already a friend of user %d", friendID, userID)
		}
		return nil
	})
	if err != nil {
		log.Debug(ctx, "friendship not added", zap.Int64("user_id", userID), zap.Int64("friend_id", friendID), zap.Error(err))
		return mapError(op, err)
	}
	return nil
}

// RemoveFriendship удаляет оба направления одной командой.
func (r *FriendRepository) RemoveFriendship(ctx context.Context, userID, friendID int64) error {
	const op = "FriendRepository.RemoveFriendship"

	if err := ensureUsers(ctx, r.pool, op, userID, friendID); err != nil {
		return mapError(op, err)
	}
	if _, err := r.pool.Exec(ctx, `
        DELETE FROM friend_user
        WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
    `, userID, friendID); err != nil {
		logger.Log(ctx).Error(ctx, "error removing friendship", zap.Error(err))
		return mapError(op, err)
	}
	return nil
}

func (r *FriendRepository) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	const op = "FriendRepository.FriendIDs"

	if err := ensureUsers(ctx, r.pool, op, userID); err != nil {
		return nil, mapError(op, err)
	}
	rows, err := r.pool.Query(ctx, `
        SELECT friend_id
        FROM friend_user
        WHERE user_id = $1
        ORDER BY friend_id
    `, userID)
	if err != nil {
		return nil, mapError(op, err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, mapError(op, err)
	}
	return ids, nil
}

func (r *FriendRepository) CommonFriendIDs(ctx context.Context, userID, otherID int64) ([]int64, error) {
	const op = "FriendRepository.CommonFriendIDs"

	if err := ensureUsers(ctx, r.pool, op, userID, otherID); err != nil {
		return nil, mapError(op, err)
	}
	rows, err := r.pool.Query(ctx, `
        SELECT a.friend_id
        FROM friend_user a
        JOIN friend_user b ON b.friend_id = a.friend_id
        WHERE a.user_id = $1 AND b.user_id = $2
        ORDER BY a.friend_id
    `, userID, otherID)
	if err != nil {
		return nil, mapError(op, err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, mapError(op, err)
	}
	return ids, nil
}

// LikeRepository хранит лайки в таблице like_user.
type LikeRepository struct {
	pool PgxPoolInterface
}

// NewLikeRepository создает новый экземпляр репозитория лайков.
func NewLikeRepository(pool PgxPoolInterface) repositories.LikeRepository {
	return &LikeRepository{pool: pool}
}

func (r *LikeRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	const op = "LikeRepository.AddLike"

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := ensureFilm(ctx, tx, op, filmID); err != nil {
			return err
		}
		if err := ensureUsers(ctx, tx, op, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
        INSERT INTO like_user (film_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `, filmID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return entities.NewConflictError(op, "user %d already liked film %d", userID, filmID)
		}
		return nil
	})
	if err != nil {
		logger.Log(ctx).Debug(ctx, "like not added", zap.Int64("film_id", filmID), zap.Int64("user_id", userID), zap.Error(err))
		return mapError(op, err)
	}
	return nil
}

func (r *LikeRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	const op = "LikeRepository.RemoveLike"

	if err := ensureFilm(ctx, r.pool, op, filmID); err != nil {
		return mapError(op, err)
	}
	if err := ensureUsers(ctx, r.pool, op, userID); err != nil {
		return mapError(op, err)
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM like_user WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error removing like", zap.Error(err))
		return mapError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.NewNotFoundError(op, "user %d has not liked film %d", userID, filmID)
	}
	return nil
}

func (r *LikeRepository) LikerIDs(ctx context.Context, filmID int64) ([]int64, error) {
	const op = "LikeRepository.LikerIDs"

	if err := ensureFilm(ctx, r.pool, op, filmID); err != nil {
		return nil, mapError(op, err)
	}
	rows, err := r.pool.Query(ctx, `
        SELECT user_id
        FROM like_user
        WHERE film_id = $1
        ORDER BY user_id
    `, filmID)
	if err != nil {
		return nil, mapError(op, err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, mapError(op, err)
	}
	return ids, nil
}
