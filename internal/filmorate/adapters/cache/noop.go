package cache

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/cache"
)

// NoopPopularCache используется, когда Redis отключен. Всегда промахивается.
type NoopPopularCache struct{}

// NewNoopPopularCache создает пустой кэш.
func NewNoopPopularCache() cache.PopularCache {
	return NoopPopularCache{}
}

func (NoopPopularCache) Version(context.Context) (int64, error) { return 0, nil }

func (NoopPopularCache) Get(context.Context, int64, int) ([]*entities.Film, bool, error) {
	return nil, false, nil
}

func (NoopPopularCache) Set(context.Context, int64, int, []*entities.Film) error { return nil }

func (NoopPopularCache) Invalidate(context.Context) error { return nil }

func (NoopPopularCache) Close() error { return nil }
