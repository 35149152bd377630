// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"technotes/pkg/logger"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем параллельно выполняет все хуки в пределах timeout. Ошибка
// одного хука не отменяет остальные.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)
	log.Info(ctx, "shutdown signal received", zap.Duration("timeout", timeout))

	var group errgroup.Group
	for _, hook := range hooks {
		group.Go(func() error {
			return hook(ctx)
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- group.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error(ctx, "shutdown hook failed", zap.Error(err))
			return
		}
		log.Info(ctx, "shutdown completed")
	case <-ctx.Done():
		log.Warn(ctx, "shutdown timed out, exiting anyway")
	}
}
