package config

import (
	"fmt"
	"time"

	"filmorate/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"FILMORATE_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"FILMORATE_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"FILMORATE_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"FILMORATE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"FILMORATE_POSTGRES_DB" env-default:"filmorate"`
	MinConn         int           `yaml:"min_conn" env:"FILMORATE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"FILMORATE_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"FILMORATE_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"FILMORATE_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"FILMORATE_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций (драйвер pgx/v5).
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// PoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}
