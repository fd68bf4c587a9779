package onnx

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/at-ishikawa/photolingo/internal/classifier"
)

// Model runs one ONNX session. Its tensors are allocated once, so inference is serialized.
type Model struct {
	name     string
	metadata Metadata

	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

func (m *Model) Classify(ctx context.Context, img image.Image) ([]classifier.Prediction, error) {
	input := packImage(img, m.metadata)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, classifier.ErrModelNotLoaded
	}

	copy(m.inputTensor.GetData(), input)
	if err := m.session.Run(); err != nil {
		return nil, fmt.Errorf("session.Run(%s) > %w", m.name, err)
	}
	scores := append([]float32(nil), m.outputTensor.GetData()...)

	return rank(scores, m.metadata.Labels, m.metadata.TopK), nil
}

func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.session != nil {
		if err := m.session.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("session.Destroy() > %w", err))
		}
		m.session = nil
	}
	if m.inputTensor != nil {
		if err := m.inputTensor.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("inputTensor.Destroy() > %w", err))
		}
		m.inputTensor = nil
	}
	if m.outputTensor != nil {
		if err := m.outputTensor.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("outputTensor.Destroy() > %w", err))
		}
		m.outputTensor = nil
	}
	return errors.Join(errs...)
}
