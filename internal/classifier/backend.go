package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Backend is the execution engine the model runs on.
type Backend string

const (
	BackendGPU Backend = "gpu"
	BackendCPU Backend = "cpu"
)

// DefaultBackends tries the GPU first and falls back to the CPU.
var DefaultBackends = []Backend{BackendGPU, BackendCPU}

// Runtime activates an execution backend.
type Runtime interface {
	Activate(ctx context.Context, backend Backend) error
}

// BackendSelector activates the first backend that works, once.
type BackendSelector struct {
	runtime    Runtime
	candidates []Backend

	mu     sync.Mutex
	ready  bool
	active Backend
}

func NewBackendSelector(runtime Runtime, candidates []Backend) *BackendSelector {
	if len(candidates) == 0 {
		candidates = DefaultBackends
	}
	return &BackendSelector{
		runtime:    runtime,
		candidates: candidates,
	}
}

// EnsureReady activates a backend on the first call and returns the active one afterwards.
// It fails only when every candidate fails, in which case a later call tries again.
func (s *BackendSelector) EnsureReady(ctx context.Context) (Backend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return s.active, nil
	}

	var errs []error
	for _, backend := range s.candidates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.runtime.Activate(ctx, backend); err != nil {
			slog.Default().Warn("backend not available, falling back",
				"backend", backend,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("runtime.Activate(%s) > %w", backend, err))
			continue
		}

		slog.Default().Info("backend initialized", "backend", backend)
		s.ready = true
		s.active = backend
		return backend, nil
	}
	return "", fmt.Errorf("no backend could be initialized: %w", errors.Join(errs...))
}

// Active returns the selected backend, if any.
func (s *BackendSelector) Active() (Backend, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.ready
}

// ParseBackends converts configuration values into backends.
func ParseBackends(values []string) ([]Backend, error) {
	backends := make([]Backend, 0, len(values))
	for _, value := range values {
		switch backend := Backend(value); backend {
		case BackendGPU, BackendCPU:
			backends = append(backends, backend)
		default:
			return nil, fmt.Errorf("unknown backend: %s", value)
		}
	}
	return backends, nil
}
