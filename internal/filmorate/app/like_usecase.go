package app

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodAddLike    = "AddLike"
	methodRemoveLike = "RemoveLike"
	methodPopular    = "Popular"

	msgLikeAdded     = "like added"
	msgLikeRemoved   = "like removed"
	msgPopularCached = "popular films served from cache"
	msgErrAddLike    = "failed to add like"
	msgErrRemoveLike = "failed to remove like"
	msgErrListLikers = "failed to list likers"
	msgErrPopular    = "failed to rank films"
	msgErrCacheRead  = "failed to read popular films cache"
	msgErrCacheWrite = "failed to write popular films cache"
)

// LikeUseCaseImpl реализует api.LikeService.
type LikeUseCaseImpl struct {
	likes   repositories.LikeRepository
	films   repositories.FilmRepository
	popular cache.PopularCache
}

// NewLikeUseCase создает новый экземпляр сервиса лайков.
func NewLikeUseCase(
	likes repositories.LikeRepository,
	films repositories.FilmRepository,
	popular cache.PopularCache,
) api.LikeService {
	return &LikeUseCaseImpl{
		likes:   likes,
		films:   films,
		popular: popular,
	}
}

// AddLike ставит лайк и возвращает всех пользователей, лайкнувших фильм.
func (l *LikeUseCaseImpl) AddLike(ctx context.Context, filmID, userID int64) (ids []int64, err error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodAddLike),
		zap.Int64("film_id", filmID),
		zap.Int64("user_id", userID),
	)
	defer func() {
		metrics.LikeOperationsTotal.WithLabelValues("add", metrics.Result(err)).Inc()
	}()

	if err := l.likes.AddLike(ctx, filmID, userID); err != nil {
		logFailure(ctx, log, msgErrAddLike, err)
		return nil, err
	}
	invalidatePopular(ctx, l.popular)

	ids, err = l.likes.LikerIDs(ctx, filmID)
	if err != nil {
		log.Error(ctx, msgErrListLikers, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgLikeAdded, zap.Int("likes", len(ids)))
	return ids, nil
}

// RemoveLike снимает лайк. Если лайка не было, возвращает ErrNotFound.
func (l *LikeUseCaseImpl) RemoveLike(ctx context.Context, filmID, userID int64) (ids []int64, err error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRemoveLike),
		zap.Int64("film_id", filmID),
		zap.Int64("user_id", userID),
	)
	defer func() {
		metrics.LikeOperationsTotal.WithLabelValues("remove", metrics.Result(err)).Inc()
	}()

	if err := l.likes.RemoveLike(ctx, filmID, userID); err != nil {
		logFailure(ctx, log, msgErrRemoveLike, err)
		return nil, err
	}
	invalidatePopular(ctx, l.popular)

	ids, err = l.likes.LikerIDs(ctx, filmID)
	if err != nil {
		log.Error(ctx, msgErrListLikers, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, msgLikeRemoved, zap.Int("likes", len(ids)))
	return ids, nil
}

// Popular возвращает не более count фильмов по убыванию лайков.
// count <= 0 заменяется значением по умолчанию. Ошибки кэша не прерывают запрос.
func (l *LikeUseCaseImpl) Popular(ctx context.Context, count int) ([]*entities.Film, error) {
	if count <= 0 {
		count = entities.DefaultPopularCount
	}
	log := logger.Log(ctx).With(zap.String("method", methodPopular), zap.Int("count", count))

	cached := l.popular != nil
	var version int64
	if cached {
		var err error
		if version, err = l.popular.Version(ctx); err != nil {
			log.Warn(ctx, msgErrCacheRead, zap.Error(err))
			cached = false
		}
	}

	if cached {
		films, ok, err := l.popular.Get(ctx, version, count)
		switch {
		case err != nil:
			log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		case ok:
			log.Debug(ctx, msgPopularCached)
			return films, nil
		}
	}

	films, err := l.films.Popular(ctx, count)
	if err != nil {
		log.Error(ctx, msgErrPopular, zap.Error(err))
		return nil, err
	}

	if cached {
		if err := l.popular.Set(ctx, version, count, films); err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		}
	}
	return films, nil
}
