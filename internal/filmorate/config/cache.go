package config

import "time"

// CacheConfig задает LRU-кэш справочников жанров и рейтингов.
type CacheConfig struct {
	Size int           `yaml:"size" env:"FILMORATE_REFERENCE_CACHE_SIZE" env-default:"64"`
	TTL  time.Duration `yaml:"ttl" env:"FILMORATE_REFERENCE_CACHE_TTL" env-default:"1h"`
}
