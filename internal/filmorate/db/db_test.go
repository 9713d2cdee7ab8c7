package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/config"
	"filmorate/internal/filmorate/db"
)

func TestNewUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &config.PostgresConfig{
		Host:            "127.0.0.1",
		Port:            1,
		User:            "user",
		Password:        "pass",
		Database:        "none",
		MinConn:         1,
		MaxConn:         2,
		ConnectAttempts: 1,
	}

	database, err := db.New(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}

func TestNewCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &config.PostgresConfig{Host: "127.0.0.1", Port: 1, Database: "none", ConnectAttempts: 3}

	database, err := db.New(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, database)
}
