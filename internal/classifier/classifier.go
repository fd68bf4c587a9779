package classifier

import (
	"context"
	"fmt"
	"image"
	"os"
)

// Classifier turns images into ranked predictions, loading the model lazily.
type Classifier struct {
	loader *ModelLoader
}

func New(loader *ModelLoader) *Classifier {
	return &Classifier{loader: loader}
}

// Classify returns the model's predictions for img in the model's own order.
func (c *Classifier) Classify(ctx context.Context, img image.Image) ([]Prediction, error) {
	if !c.loader.IsLoaded() {
		if err := c.loader.EnsureLoaded(ctx); err != nil {
			return nil, err
		}
	}

	model, ok := c.loader.Model()
	if !ok {
		return nil, ErrModelNotLoaded
	}

	predictions, err := model.Classify(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("model.Classify() > %w", err)
	}
	return predictions, nil
}

// ClassifyFile decodes data as an image and classifies it.
func (c *Classifier) ClassifyFile(ctx context.Context, data []byte) ([]Prediction, error) {
	img, err := DecodeImage(ctx, data)
	if err != nil {
		return nil, err
	}
	return c.Classify(ctx, img)
}

// ClassifyPath reads the image at path and classifies it.
func (c *Classifier) ClassifyPath(ctx context.Context, path string) ([]Prediction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return c.ClassifyFile(ctx, data)
}

func (c *Classifier) IsModelLoaded() bool {
	return c.loader.IsLoaded()
}

// Close releases the model.
func (c *Classifier) Close() error {
	return c.loader.Close()
}
