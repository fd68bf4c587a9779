// Package bootstrap runs a command and releases its resources however it ends.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"
)

const DefaultShutdownTimeout = 5 * time.Second

// App runs a function and then its shutdown hooks, on return or on interrupt.
type App struct {
	shutdownTimeout time.Duration

	mu    sync.Mutex
	hooks []func(ctx context.Context) error
	done  bool
}

func New() *App {
	return &App{shutdownTimeout: DefaultShutdownTimeout}
}

// AddShutdownHook registers fn. Hooks run in reverse order of registration.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// AddCloser registers closer as a shutdown hook.
func (a *App) AddCloser(name string, closer io.Closer) {
	a.AddShutdownHook(func(ctx context.Context) error {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("%s.Close() > %w", name, err)
		}
		slog.Default().Debug("closed", "resource", name)
		return nil
	})
}

// Run executes run with a context canceled on interrupt.
// The shutdown hooks run once run returns, or right away on interrupt.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Default().Info("shutting down")
	case runErr = <-errCh:
	}
	return errors.Join(runErr, a.Shutdown())
}

// Shutdown runs the hooks once, bounded by the shutdown timeout.
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done {
		return nil
	}
	a.done = true

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
