package pipeline

import (
	"context"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/history"
	"github.com/at-ishikawa/photolingo/internal/translator"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/pipeline/mock_interfaces.go -package=mock_pipeline

type Classifier interface {
	ClassifyFile(ctx context.Context, data []byte) ([]classifier.Prediction, error)
}

type Translator interface {
	Translate(ctx context.Context, source, target, text string) translator.Result
}

type Recorder interface {
	Record(ctx context.Context, record history.TranslationRecord) error
}
