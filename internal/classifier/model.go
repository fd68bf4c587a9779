// Package classifier recognizes the contents of images with a pretrained model.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	ErrInvalidImage   = errors.New("file is not an image")
	ErrImageDecode    = errors.New("failed to decode image")
	ErrModelLoad      = errors.New("failed to load model")
	ErrModelNotLoaded = errors.New("model is not loaded")
)

// Prediction is a single label proposed by the model.
type Prediction struct {
	Label string `json:"label"`
	// Confidence is in [0, 1]
	Confidence float64 `json:"confidence"`
}

//go:generate mockgen -source=model.go -destination=../mocks/classifier/mock_model.go -package=mock_classifier

// Model is a loaded image-classification model.
// Implementations return predictions sorted by descending confidence.
type Model interface {
	Classify(ctx context.Context, img image.Image) ([]Prediction, error)
	Close() error
}

// ModelSpec selects a pretrained model by architecture, version and width multiplier.
type ModelSpec struct {
	Architecture string
	Version      int
	Alpha        float64
}

// DefaultModelSpec is MobileNet v2 at full width.
var DefaultModelSpec = ModelSpec{
	Architecture: "mobilenet",
	Version:      2,
	Alpha:        1.0,
}

// Name is the asset name of the model, e.g. mobilenet_v2_1.0
func (s ModelSpec) Name() string {
	return fmt.Sprintf("%s_v%d_%.1f", s.Architecture, s.Version, s.Alpha)
}

// ModelSource fetches a model prepared for the given backend.
type ModelSource interface {
	Load(ctx context.Context, backend Backend, spec ModelSpec) (Model, error)
}
