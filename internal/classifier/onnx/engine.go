// Package onnx runs classification models on ONNX Runtime.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/config"
)

// Engine owns the ONNX Runtime environment and the session options of the active backend.
type Engine struct {
	modelDirectory string
	libraryPath    string
	cudaDeviceID   int

	mu          sync.Mutex
	initialized bool
	backend     classifier.Backend
	options     *ort.SessionOptions
}

func NewEngine(cfg config.ClassifierConfig) *Engine {
	return &Engine{
		modelDirectory: cfg.ModelDirectory,
		libraryPath:    cfg.OnnxRuntimeLibrary,
		cudaDeviceID:   cfg.CUDADeviceID,
	}
}

// Activate prepares session options for backend, initializing the environment on first use.
func (e *Engine) Activate(ctx context.Context, backend classifier.Backend) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.initialize(); err != nil {
		return err
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return fmt.Errorf("ort.NewSessionOptions() > %w", err)
	}

	switch backend {
	case classifier.BackendGPU:
		if err := e.appendCUDA(options); err != nil {
			_ = options.Destroy()
			return err
		}
	case classifier.BackendCPU:
	default:
		_ = options.Destroy()
		return fmt.Errorf("unsupported backend: %s", backend)
	}

	if e.options != nil {
		_ = e.options.Destroy()
	}
	e.options = options
	e.backend = backend
	return nil
}

func (e *Engine) initialize() error {
	if e.initialized {
		return nil
	}
	if e.libraryPath != "" {
		ort.SetSharedLibraryPath(e.libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("ort.InitializeEnvironment() > %w", err)
	}
	e.initialized = true
	slog.Default().Debug("onnx runtime initialized", "library", e.libraryPath)
	return nil
}

func (e *Engine) appendCUDA(options *ort.SessionOptions) error {
	cudaOptions, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return fmt.Errorf("ort.NewCUDAProviderOptions() > %w", err)
	}
	defer func() {
		_ = cudaOptions.Destroy()
	}()

	if err := cudaOptions.Update(map[string]string{
		"device_id": strconv.Itoa(e.cudaDeviceID),
	}); err != nil {
		return fmt.Errorf("cudaOptions.Update() > %w", err)
	}
	if err := options.AppendExecutionProviderCUDA(cudaOptions); err != nil {
		return fmt.Errorf("options.AppendExecutionProviderCUDA() > %w", err)
	}
	return nil
}

// ModelPaths returns the model file and its metadata file for spec.
func (e *Engine) ModelPaths(spec classifier.ModelSpec) (string, string) {
	base := filepath.Join(e.modelDirectory, spec.Name())
	return base + ".onnx", base + ".json"
}

// Load creates a session for spec on the active backend.
func (e *Engine) Load(ctx context.Context, backend classifier.Backend, spec classifier.ModelSpec) (classifier.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized || e.backend != backend {
		return nil, fmt.Errorf("backend %s is not active", backend)
	}

	modelPath, metadataPath := e.ModelPaths(spec)
	metadata, err := ReadMetadata(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("ReadMetadata() > %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("ort.NewEmptyTensor(input) > %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.OutputShape...))
	if err != nil {
		_ = inputTensor.Destroy()
		return nil, fmt.Errorf("ort.NewEmptyTensor(output) > %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{metadata.InputName}, []string{metadata.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		e.options)
	if err != nil {
		_ = inputTensor.Destroy()
		_ = outputTensor.Destroy()
		return nil, fmt.Errorf("ort.NewAdvancedSession(%s) > %w", modelPath, err)
	}

	slog.Default().Debug("onnx session created",
		"model", modelPath,
		"backend", backend,
		"labels", len(metadata.Labels),
	)
	return &Model{
		name:         spec.Name(),
		metadata:     metadata,
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Close releases the session options and the environment. Models must be closed first.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	if e.options != nil {
		if err := e.options.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("options.Destroy() > %w", err))
		}
		e.options = nil
	}
	if e.initialized {
		if err := ort.DestroyEnvironment(); err != nil {
			errs = append(errs, fmt.Errorf("ort.DestroyEnvironment() > %w", err))
		}
		e.initialized = false
	}
	return errors.Join(errs...)
}
