// Package reference кэширует справочники жанров и рейтингов в LRU-кэше с TTL.
// Справочники не меняются во время работы сервиса, поэтому кэш не инвалидируется.
package reference

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/repositories"
)

// Лейблы метрик кэша.
const (
	genreCacheLabel = "genre"
	mpaCacheLabel   = "mpa"
)

// allKey - ключ полного списка справочника.
const allKey int64 = 0

// GenreRepository оборачивает repositories.GenreRepository кэшем.
type GenreRepository struct {
	next  repositories.GenreRepository
	byID  *expirable.LRU[int64, entities.Genre]
	lists *expirable.LRU[int64, []entities.Genre]
}

// NewGenreRepository создает кэширующий репозиторий жанров.
// size - максимальное количество записей, ttl - время жизни записи.
func NewGenreRepository(next repositories.GenreRepository, size int, ttl time.Duration) *GenreRepository {
	return &GenreRepository{
		next:  next,
		byID:  expirable.NewLRU[int64, entities.Genre](size, nil, ttl),
		lists: expirable.NewLRU[int64, []entities.Genre](1, nil, ttl),
	}
}

func (r *GenreRepository) GetByID(ctx context.Context, id int64) (*entities.Genre, error) {
	if genre, ok := r.byID.Get(id); ok {
		metrics.CacheHitsTotal.WithLabelValues(genreCacheLabel).Inc()
		return &genre, nil
	}
	metrics.CacheMissesTotal.WithLabelValues(genreCacheLabel).Inc()

	genre, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.byID.Add(id, *genre)
	return genre, nil
}

func (r *GenreRepository) GetAll(ctx context.Context) ([]entities.Genre, error) {
	if genres, ok := r.lists.Get(allKey); ok {
		metrics.CacheHitsTotal.WithLabelValues(genreCacheLabel).Inc()
		return append([]entities.Genre(nil), genres...), nil
	}
	metrics.CacheMissesTotal.WithLabelValues(genreCacheLabel).Inc()

	genres, err := r.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	r.lists.Add(allKey, append([]entities.Genre(nil), genres...))
	for _, genre := range genres {
		r.byID.Add(genre.ID, genre)
	}
	return genres, nil
}

// MpaRepository оборачивает repositories.MpaRepository кэшем.
type MpaRepository struct {
	next  repositories.MpaRepository
	byID  *expirable.LRU[int64, entities.Mpa]
	lists *expirable.LRU[int64, []entities.Mpa]
}

// NewMpaRepository создает кэширующий репозиторий рейтингов.
func NewMpaRepository(next repositories.MpaRepository, size int, ttl time.Duration) *MpaRepository {
	return &MpaRepository{
		next:  next,
		byID:  expirable.NewLRU[int64, entities.Mpa](size, nil, ttl),
		lists: expirable.NewLRU[int64, []entities.Mpa](1, nil, ttl),
	}
}

func (r *MpaRepository) GetByID(ctx context.Context, id int64) (*entities.Mpa, error) {
	if mpa, ok := r.byID.Get(id); ok {
		metrics.CacheHitsTotal.WithLabelValues(mpaCacheLabel).Inc()
		return &mpa, nil
	}
	metrics.CacheMissesTotal.WithLabelValues(mpaCacheLabel).Inc()

	mpa, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.byID.Add(id, *mpa)
	return mpa, nil
}

func (r *MpaRepository) GetAll(ctx context.Context) ([]entities.Mpa, error) {
	if ratings, ok := r.lists.Get(allKey); ok {
		metrics.CacheHitsTotal.WithLabelValues(mpaCacheLabel).Inc()
		return append([]entities.Mpa(nil), ratings...), nil
	}
	metrics.CacheMissesTotal.WithLabelValues(mpaCacheLabel).Inc()

	ratings, err := r.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	r.lists.Add(allKey, append([]entities.Mpa(nil), ratings...))
	for _, mpa := range ratings {
		r.byID.Add(mpa.ID, mpa)
	}
	return ratings, nil
}

// Factory подменяет справочники фабрики кэширующими обертками.
type Factory struct {
	repositories.Factory
	genres *GenreRepository
	mpa    *MpaRepository
}

// NewFactory оборачивает справочники base кэшем. Остальные репозитории не меняются.
func NewFactory(base repositories.Factory, size int, ttl time.Duration) *Factory {
	return &Factory{
		Factory: base,
		genres:  NewGenreRepository(base.GenreRepository(), size, ttl),
		mpa:     NewMpaRepository(base.MpaRepository(), size, ttl),
	}
}

func (f *Factory) GenreRepository() repositories.GenreRepository { return f.genres }
func (f *Factory) MpaRepository() repositories.MpaRepository     { return f.mpa }
