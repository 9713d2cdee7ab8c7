package app

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/ports/cache"
	"filmorate/pkg/logger"
)

const msgErrInvalidateCache = "failed to invalidate popular films cache"

// invalidatePopular сбрасывает кэш рейтинга. Ошибка кэша не прерывает операцию:
// устаревшие записи истекут по TTL.
func invalidatePopular(ctx context.Context, popular cache.PopularCache) {
	if popular == nil {
		return
	}
	if err := popular.Invalidate(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrInvalidateCache, zap.Error(err))
	}
}
