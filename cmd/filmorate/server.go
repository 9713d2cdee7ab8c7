package main

import (
	"context"

	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// runServer запускает start в отдельной горутине.
// Ошибка запуска отменяет ctx, чтобы shutdown.Wait не ждал сигнала впустую,
// и попадает в возвращаемый канал.
func runServer(ctx context.Context, cancel context.CancelFunc, start func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := start(); err != nil {
			logger.Log(ctx).Error(ctx, ErrStartHTTPServer, zap.Error(err))
			errCh <- err
			cancel()
		}
	}()
	return errCh
}
