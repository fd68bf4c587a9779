package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

const loadKey = "model"

// ModelLoader loads the model on first use and keeps it until Close.
// Concurrent callers share one in-flight load.
type ModelLoader struct {
	selector *BackendSelector
	source   ModelSource
	spec     ModelSpec

	group singleflight.Group

	mu    sync.RWMutex
	model Model
}

func NewModelLoader(selector *BackendSelector, source ModelSource, spec ModelSpec) *ModelLoader {
	return &ModelLoader{
		selector: selector,
		source:   source,
		spec:     spec,
	}
}

// EnsureLoaded returns once the model is loaded. If a load is already running
// the caller waits for it; ctx only bounds this caller's wait.
func (l *ModelLoader) EnsureLoaded(ctx context.Context) error {
	if l.IsLoaded() {
		return nil
	}

	// The shared load must not be aborted by whichever caller happened to start it.
	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(loadKey, func() (any, error) {
		if model, ok := l.Model(); ok {
			return model, nil
		}
		return l.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case result := <-ch:
		return result.Err
	}
}

func (l *ModelLoader) load(ctx context.Context) (Model, error) {
	backend, err := l.selector.EnsureReady(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: selector.EnsureReady() > %w", ErrModelLoad, err)
	}

	model, err := l.source.Load(ctx, backend, l.spec)
	if err != nil {
		slog.Default().Error("failed to load model",
			"model", l.spec.Name(),
			"backend", backend,
			"error", err,
		)
		return nil, fmt.Errorf("%w: source.Load(%s) > %w", ErrModelLoad, l.spec.Name(), err)
	}

	l.mu.Lock()
	l.model = model
	l.mu.Unlock()

	slog.Default().Info("model loaded", "model", l.spec.Name(), "backend", backend)
	return model, nil
}

func (l *ModelLoader) IsLoaded() bool {
	_, ok := l.Model()
	return ok
}

func (l *ModelLoader) Model() (Model, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.model, l.model != nil
}

// Close releases the loaded model. A later EnsureLoaded loads it again.
func (l *ModelLoader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.model == nil {
		return nil
	}
	err := l.model.Close()
	l.model = nil
	if err != nil {
		return fmt.Errorf("model.Close() > %w", err)
	}
	return nil
}
