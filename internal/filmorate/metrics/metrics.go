// Package metrics содержит Prometheus-метрики сервиса каталога.
// Метрики регистрируются в глобальном реестре при импорте пакета.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"filmorate/internal/filmorate/domain/entities"
)

const namespace = "filmorate"

// HTTP-метрики.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Общее количество HTTP-запросов",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов в секундах",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Метрики кэшей. Лейбл cache: genre, mpa, popular.
var (
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Количество попаданий в кэш",
		},
		[]string{"cache"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Количество промахов кэша",
		},
		[]string{"cache"},
	)
)

// Доменные метрики. Лейбл result: ok или вид ошибки.
var (
	FriendshipOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friendship_operations_total",
			Help:      "Количество операций с дружбой",
		},
		[]string{"operation", "result"},
	)

	LikeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "like_operations_total",
			Help:      "Количество операций с лайками",
		},
		[]string{"operation", "result"},
	)
)

// Result возвращает значение лейбла result для ошибки операции.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	switch entities.KindOf(err) {
	case entities.ErrValidation:
		return "validation"
	case entities.ErrNotFound:
		return "not_found"
	case entities.ErrConflict:
		return "conflict"
	case entities.ErrUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}
