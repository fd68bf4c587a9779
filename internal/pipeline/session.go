// Package pipeline ties classification, translation and history together for one user.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/history"
	"github.com/at-ishikawa/photolingo/internal/language"
	"github.com/at-ishikawa/photolingo/internal/translator"
)

var (
	// ErrStale is returned when a newer action started before this one finished.
	ErrStale        = errors.New("superseded by a newer action")
	ErrNoPrediction = errors.New("no prediction at the given index")
)

// DefaultSourceLanguage is the language of the model's labels.
const DefaultSourceLanguage = "en"

type Translation struct {
	Prediction classifier.Prediction
	TargetCode string
	TargetName string
	Result     translator.Result
}

// State is what the session currently shows.
type State struct {
	Predictions []classifier.Prediction
	Translation *Translation
}

// Session holds the predictions of the last submitted image and the last translation.
// Every Submit and Clear starts a new generation; results of older generations are dropped.
type Session struct {
	classifier     Classifier
	translator     Translator
	recorder       Recorder
	sourceLanguage string

	mu          sync.Mutex
	generation  uint64
	predictions []classifier.Prediction
	translation *Translation
}

type Option func(*Session)

func WithSourceLanguage(code string) Option {
	return func(s *Session) {
		s.sourceLanguage = code
	}
}

func NewSession(c Classifier, t Translator, r Recorder, opts ...Option) *Session {
	s := &Session{
		classifier:     c,
		translator:     t,
		recorder:       r,
		sourceLanguage: DefaultSourceLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit classifies data and makes its predictions current.
func (s *Session) Submit(ctx context.Context, data []byte) ([]classifier.Prediction, error) {
	generation := s.reset()

	predictions, err := s.classifier.ClassifyFile(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	s.predictions = predictions
	return clonePredictions(predictions), nil
}

// Translate translates the label of the prediction at index into targetCode.
// A successful translation is recorded in history even if the session moved on meanwhile.
func (s *Session) Translate(ctx context.Context, index int, targetCode string) (translator.Result, error) {
	s.mu.Lock()
	generation := s.generation
	if index < 0 || index >= len(s.predictions) {
		s.mu.Unlock()
		return translator.Result{}, fmt.Errorf("%w: %d", ErrNoPrediction, index)
	}
	prediction := s.predictions[index]
	s.mu.Unlock()

	result := s.translator.Translate(ctx, s.sourceLanguage, targetCode, prediction.Label)
	targetName, _ := language.Name(targetCode)

	var errs []error
	if result.OK() {
		if err := s.recorder.Record(ctx, history.TranslationRecord{
			OriginalWord:       prediction.Label,
			TargetLanguageCode: targetCode,
			TargetLanguageName: targetName,
			TranslatedWord:     result.Text,
		}); err != nil {
			slog.Default().Warn("failed to record a translation",
				"word", prediction.Label,
				"target", targetCode,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("recorder.Record() > %w", err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		errs = append(errs, ErrStale)
		return result, errors.Join(errs...)
	}
	s.translation = &Translation{
		Prediction: prediction,
		TargetCode: targetCode,
		TargetName: targetName,
		Result:     result,
	}
	return result, errors.Join(errs...)
}

// Clear drops the current state and invalidates work in progress.
func (s *Session) Clear() {
	s.reset()
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{Predictions: clonePredictions(s.predictions)}
	if s.translation != nil {
		translation := *s.translation
		state.Translation = &translation
	}
	return state
}

func (s *Session) reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.predictions = nil
	s.translation = nil
	return s.generation
}

func clonePredictions(predictions []classifier.Prediction) []classifier.Prediction {
	if predictions == nil {
		return nil
	}
	return append([]classifier.Prediction(nil), predictions...)
}
