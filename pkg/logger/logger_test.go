package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"filmorate/pkg/logger"
)

func newObserved() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logger.New(zap.New(core)), logs
}

func requestIDs(entry observer.LoggedEntry) []string {
	var ids []string
	for _, f := range entry.Context {
		if f.Key == logger.RequestID {
			ids = append(ids, f.String)
		}
	}
	return ids
}

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)

				ctx := logger.NewRequestIDContext(context.Background(), "req-1")
				assert.NotPanics(t, func() {
					log.Debug(ctx, "debug message")
					log.Info(ctx, "info message", zap.Int("n", 1))
					log.Warn(ctx, "warn message")
					log.Error(ctx, "error message")
				})
			})
		}
	}
}

func TestRequestIDFromContext(t *testing.T) {
	log, logs := newObserved()

	log.Info(logger.NewRequestIDContext(context.Background(), "req-7"), "with id")
	log.Info(context.Background(), "without id")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"req-7"}, requestIDs(entries[0]))
	assert.Empty(t, requestIDs(entries[1]))
}

func TestForRequest(t *testing.T) {
	t.Run("request id written once", func(t *testing.T) {
		log, logs := newObserved()
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		scoped := log.ForRequest(ctx, zap.String("path", "/films"))
		scoped.Info(ctx, "first")
		scoped.With(zap.Int("n", 1)).Info(ctx, "derived")

		for _, entry := range logs.AllUntimed() {
			assert.Equal(t, []string{"req-42"}, requestIDs(entry), entry.Message)
			assert.Equal(t, "/films", entry.ContextMap()["path"])
		}
	})

	t.Run("scoped id wins over another context", func(t *testing.T) {
		log, logs := newObserved()
		scoped := log.ForRequest(logger.NewRequestIDContext(context.Background(), "req-1"))

		scoped.Info(logger.NewRequestIDContext(context.Background(), "req-2"), "message")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, []string{"req-1"}, requestIDs(logs.AllUntimed()[0]))
	})

	t.Run("no request id keeps reading context", func(t *testing.T) {
		log, logs := newObserved()
		plain := log.ForRequest(context.Background(), zap.String("component", "test"))
		assert.NotSame(t, log, plain)

		plain.Info(logger.NewRequestIDContext(context.Background(), "late"), "message")

		assert.Equal(t, []string{"late"}, requestIDs(logs.AllUntimed()[0]))
	})
}

func TestLog(t *testing.T) {
	t.Run("fallback when nothing configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("global logger used when context is empty", func(t *testing.T) {
		global, _ := newObserved()
		logger.SetGlobalLogger(global)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("context logger wins over global", func(t *testing.T) {
		global, _ := newObserved()
		local, _ := newObserved()
		logger.SetGlobalLogger(global)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		ctx := logger.NewContext(context.Background(), local)
		assert.Same(t, local, logger.Log(ctx))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}
