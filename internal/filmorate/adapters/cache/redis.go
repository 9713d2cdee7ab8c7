// Package cache содержит реализации кэша рейтинга популярных фильмов.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodVersion    = "version"
	LogMethodGet        = "get"
	LogMethodSet        = "set"
	LogMethodInvalidate = "invalidate"

	ErrorFailedToGetVersion = "failed to get cache version from redis"
	ErrorFailedToGet        = "failed to get value from redis"
	ErrorFailedToSet        = "failed to set value in redis"
	ErrorFailedToDecode     = "failed to decode cached value"
	ErrorFailedToEncode     = "failed to encode value"
	ErrorFailedToInvalidate = "failed to invalidate cache"
	ErrorFailedToClose      = "failed to close redis connection"
)

// DefaultKeyPrefix - префикс ключей по умолчанию.
const DefaultKeyPrefix = "filmorate:popular"

const popularCacheLabel = "popular"

// RedisPopularCache реализует cache.PopularCache поверх Redis.
// Ключ записи: <prefix>:v<version>:<count>, версия хранится в <prefix>:version.
type RedisPopularCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisPopularCache создает кэш поверх готового клиента.
func NewRedisPopularCache(client *redis.Client, prefix string, ttl time.Duration) cache.PopularCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisPopularCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisPopularCache) versionKey() string {
	return c.prefix + ":version"
}

func (c *RedisPopularCache) entryKey(version int64, count int) string {
	return fmt.Sprintf("%s:v%d:%d", c.prefix, version, count)
}

// Version возвращает 0, если версия еще не создавалась.
func (c *RedisPopularCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToGetVersion, zap.String("method", LogMethodVersion), zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrorFailedToGetVersion, err)
	}
	return version, nil
}

// Get получает рейтинг для версии и размера выборки.
func (c *RedisPopularCache) Get(ctx context.Context, version int64, count int) ([]*entities.Film, bool, error) {
	key := c.entryKey(version, count)
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheMissesTotal.WithLabelValues(popularCacheLabel).Inc()
			return nil, false, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var films []*entities.Film
	if err := json.Unmarshal(value, &films); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		metrics.CacheMissesTotal.WithLabelValues(popularCacheLabel).Inc()
		return nil, false, nil
	}

	metrics.CacheHitsTotal.WithLabelValues(popularCacheLabel).Inc()
	return films, true, nil
}

// Set сохраняет рейтинг с временем жизни кэша.
func (c *RedisPopularCache) Set(ctx context.Context, version int64, count int, films []*entities.Film) error {
	key := c.entryKey(version, count)
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	value, err := json.Marshal(films)
	if err != nil {
		log.Error(ctx, ErrorFailedToEncode, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Invalidate атомарно увеличивает версию. Старые записи истекают по TTL.
func (c *RedisPopularCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToInvalidate, zap.String("method", LogMethodInvalidate), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisPopularCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
