package onnx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/config"
)

func TestEngine_ModelPaths(t *testing.T) {
	engine := NewEngine(config.ClassifierConfig{ModelDirectory: "models"})

	modelPath, metadataPath := engine.ModelPaths(classifier.DefaultModelSpec)
	assert.Equal(t, filepath.Join("models", "mobilenet_v2_1.0.onnx"), modelPath)
	assert.Equal(t, filepath.Join("models", "mobilenet_v2_1.0.json"), metadataPath)
}

func TestEngine_Load_BackendNotActive(t *testing.T) {
	engine := NewEngine(config.ClassifierConfig{ModelDirectory: t.TempDir()})

	_, err := engine.Load(context.Background(), classifier.BackendCPU, classifier.DefaultModelSpec)
	assert.EqualError(t, err, "backend cpu is not active")
}

func TestEngine_Load_CanceledContext(t *testing.T) {
	engine := NewEngine(config.ClassifierConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Load(ctx, classifier.BackendCPU, classifier.DefaultModelSpec)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, engine.Activate(ctx, classifier.BackendGPU), context.Canceled)
}

func TestEngine_Close_NotInitialized(t *testing.T) {
	engine := NewEngine(config.ClassifierConfig{})
	assert.NoError(t, engine.Close())
}
