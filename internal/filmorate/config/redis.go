package config

import (
	"time"

	"filmorate/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша рейтинга в Redis.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"FILMORATE_REDIS_ENABLED" env-default:"false"`
	Host         string        `yaml:"host" env:"FILMORATE_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"FILMORATE_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"FILMORATE_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"FILMORATE_REDIS_DB" env-default:"0"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"FILMORATE_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"FILMORATE_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"FILMORATE_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize     int           `yaml:"pool_size" env:"FILMORATE_REDIS_POOL_SIZE" env-default:"10"`
	KeyPrefix    string        `yaml:"key_prefix" env:"FILMORATE_REDIS_KEY_PREFIX" env-default:"filmorate:popular"`
	PopularTTL   time.Duration `yaml:"popular_ttl" env:"FILMORATE_REDIS_POPULAR_TTL" env-default:"5m"`
}

// ClientConfig возвращает настройки клиента Redis.
func (c *RedisConfig) ClientConfig() redis.Config {
	return redis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
