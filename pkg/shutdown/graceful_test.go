package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/pkg/shutdown"
)

func runWait(ctx context.Context, timeout time.Duration, hooks ...shutdown.Hook) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, timeout, hooks...)
		close(done)
	}()
	return done
}

func TestWaitExecutesHooksOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	done := runWait(ctx, time.Second, hook, failing, hook)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var completed atomic.Bool
	slow := func(hookCtx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			completed.Store(true)
			return nil
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	}

	start := time.Now()
	done := runWait(ctx, 200*time.Millisecond, slow)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Wait did not return")
	}
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, completed.Load())
}

func TestWaitHookContextNotCanceledByParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hookErr := make(chan error, 1)
	done := runWait(ctx, time.Second, func(hookCtx context.Context) error {
		hookErr <- hookCtx.Err()
		return nil
	})
	cancel()

	<-done
	require.NoError(t, <-hookErr)
}

func TestSequenceRunsHooksInOrder(t *testing.T) {
	var order []string
	record := func(name string, err error) shutdown.Hook {
		return func(context.Context) error {
			order = append(order, name)
			return err
		}
	}
	errHTTP := errors.New("http stop failed")
	errCache := errors.New("cache close failed")

	err := shutdown.Sequence(
		record("http", errHTTP),
		record("db", nil),
		record("cache", errCache),
	)(context.Background())

	assert.Equal(t, []string{"http", "db", "cache"}, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, errHTTP)
	assert.ErrorIs(t, err, errCache)
}

func TestSequenceWaitsForPreviousHook(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var httpStopped atomic.Bool
	var closedAfterStop atomic.Bool
	stopHTTP := func(context.Context) error {
		time.Sleep(50 * time.Millisecond)
		httpStopped.Store(true)
		return nil
	}
	closePool := func(context.Context) error {
		closedAfterStop.Store(httpStopped.Load())
		return nil
	}

	done := runWait(ctx, time.Second, shutdown.Sequence(stopHTTP, closePool))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
	assert.True(t, closedAfterStop.Load())
}

func TestSequenceEmpty(t *testing.T) {
	assert.NoError(t, shutdown.Sequence()(context.Background()))
}
