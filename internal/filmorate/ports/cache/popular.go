// Package cache определяет интерфейсы кэширования.
package cache

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// PopularCache кэширует рейтинг популярных фильмов.
// Записи привязаны к версии: после Invalidate записи старых версий недоступны,
// поэтому рейтинг, посчитанный до изменения лайков, не попадет в новую версию.
type PopularCache interface {
	// Version возвращает текущую версию кэша.
	Version(ctx context.Context) (int64, error)

	// Get возвращает false при промахе.
	Get(ctx context.Context, version int64, count int) ([]*entities.Film, bool, error)

	Set(ctx context.Context, version int64, count int, films []*entities.Film) error

	// Invalidate увеличивает версию.
	Invalidate(ctx context.Context) error

	Close() error
}
