package classifier

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
)

type fakeRuntime struct {
	mu        sync.Mutex
	failures  map[Backend]error
	activated []Backend
}

func (r *fakeRuntime) Activate(ctx context.Context, backend Backend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activated = append(r.activated, backend)
	return r.failures[backend]
}

func (r *fakeRuntime) calls() []Backend {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Backend(nil), r.activated...)
}

type fakeModel struct {
	predictions []Prediction
	err         error
	closed      atomic.Bool
}

func (m *fakeModel) Classify(ctx context.Context, img image.Image) ([]Prediction, error) {
	return m.predictions, m.err
}

func (m *fakeModel) Close() error {
	m.closed.Store(true)
	return nil
}

type fakeSource struct {
	model *fakeModel
	// errs are returned by successive calls before the model is handed out
	errs []error

	started chan struct{}
	release chan struct{}

	calls    atomic.Int32
	backends chan Backend
}

func newFakeSource(model *fakeModel) *fakeSource {
	return &fakeSource{
		model:    model,
		backends: make(chan Backend, 16),
	}
}

func (s *fakeSource) Load(ctx context.Context, backend Backend, spec ModelSpec) (Model, error) {
	n := s.calls.Add(1)
	s.backends <- backend
	if s.started != nil && n == 1 {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if int(n) <= len(s.errs) {
		return nil, s.errs[n-1]
	}
	return s.model, nil
}
