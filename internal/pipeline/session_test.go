package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/history"
	mock_pipeline "github.com/at-ishikawa/photolingo/internal/mocks/pipeline"
	"github.com/at-ishikawa/photolingo/internal/translator"
)

type sessionMocks struct {
	classifier *mock_pipeline.MockClassifier
	translator *mock_pipeline.MockTranslator
	recorder   *mock_pipeline.MockRecorder
}

func newTestSession(t *testing.T) (*Session, sessionMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := sessionMocks{
		classifier: mock_pipeline.NewMockClassifier(ctrl),
		translator: mock_pipeline.NewMockTranslator(ctrl),
		recorder:   mock_pipeline.NewMockRecorder(ctrl),
	}
	return NewSession(mocks.classifier, mocks.translator, mocks.recorder), mocks
}

var catPredictions = []classifier.Prediction{
	{Label: "tabby", Confidence: 0.8},
	{Label: "tiger cat", Confidence: 0.15},
	{Label: "Egyptian cat", Confidence: 0.03},
}

func TestSession_Submit(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(s *Session, m sessionMocks)
		want      []classifier.Prediction
		wantErr   error
	}{
		{
			name: "commits predictions",
			setupMock: func(s *Session, m sessionMocks) {
				m.classifier.EXPECT().ClassifyFile(gomock.Any(), []byte("image")).Return(catPredictions, nil)
			},
			want: catPredictions,
		},
		{
			name: "classification error",
			setupMock: func(s *Session, m sessionMocks) {
				m.classifier.EXPECT().ClassifyFile(gomock.Any(), gomock.Any()).Return(nil, classifier.ErrInvalidImage)
			},
			wantErr: classifier.ErrInvalidImage,
		},
		{
			name: "cleared while classifying",
			setupMock: func(s *Session, m sessionMocks) {
				m.classifier.EXPECT().
					ClassifyFile(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, data []byte) ([]classifier.Prediction, error) {
						s.Clear()
						return catPredictions, nil
					})
			},
			wantErr: ErrStale,
		},
		{
			name: "failure of a superseded submit is stale",
			setupMock: func(s *Session, m sessionMocks) {
				m.classifier.EXPECT().
					ClassifyFile(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, data []byte) ([]classifier.Prediction, error) {
						s.Clear()
						return nil, classifier.ErrImageDecode
					})
			},
			wantErr: ErrStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestSession(t)
			tt.setupMock(s, m)

			got, err := s.Submit(context.Background(), []byte("image"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Snapshot().Predictions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, s.Snapshot().Predictions)
		})
	}
}

func TestSession_Submit_NewerSubmitWins(t *testing.T) {
	s, m := newTestSession(t)
	bananaPredictions := []classifier.Prediction{{Label: "banana", Confidence: 0.97}}

	var newer []classifier.Prediction
	gomock.InOrder(
		m.classifier.EXPECT().
			ClassifyFile(gomock.Any(), []byte("cat.jpg")).
			DoAndReturn(func(ctx context.Context, data []byte) ([]classifier.Prediction, error) {
				var err error
				newer, err = s.Submit(ctx, []byte("banana.jpg"))
				require.NoError(t, err)
				return catPredictions, nil
			}),
		m.classifier.EXPECT().ClassifyFile(gomock.Any(), []byte("banana.jpg")).Return(bananaPredictions, nil),
	)

	_, err := s.Submit(context.Background(), []byte("cat.jpg"))
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, bananaPredictions, newer)
	assert.Equal(t, bananaPredictions, s.Snapshot().Predictions)
}

func TestSession_Translate(t *testing.T) {
	tests := []struct {
		name       string
		index      int
		target     string
		setupMock  func(s *Session, m sessionMocks)
		want       translator.Result
		wantErr    error
		wantAnyErr bool
		wantState  *Translation
	}{
		{
			name:   "records a successful translation",
			index:  0,
			target: "es",
			setupMock: func(s *Session, m sessionMocks) {
				m.translator.EXPECT().Translate(gomock.Any(), "en", "es", "tabby").Return(translator.Result{Text: "gato atigrado"})
				m.recorder.EXPECT().Record(gomock.Any(), history.TranslationRecord{
					OriginalWord:       "tabby",
					TargetLanguageCode: "es",
					TargetLanguageName: "Spanish",
					TranslatedWord:     "gato atigrado",
				}).Return(nil)
			},
			want: translator.Result{Text: "gato atigrado"},
			wantState: &Translation{
				Prediction: catPredictions[0],
				TargetCode: "es",
				TargetName: "Spanish",
				Result:     translator.Result{Text: "gato atigrado"},
			},
		},
		{
			name:   "failure is shown but not recorded",
			index:  1,
			target: "fr",
			setupMock: func(s *Session, m sessionMocks) {
				m.translator.EXPECT().Translate(gomock.Any(), "en", "fr", "tiger cat").
					Return(translator.Result{Failure: translator.FailureTransport, Detail: "status 503"})
			},
			want: translator.Result{Failure: translator.FailureTransport, Detail: "status 503"},
			wantState: &Translation{
				Prediction: catPredictions[1],
				TargetCode: "fr",
				TargetName: "French",
				Result:     translator.Result{Failure: translator.FailureTransport, Detail: "status 503"},
			},
		},
		{
			name:    "index out of range",
			index:   3,
			target:  "es",
			wantErr: ErrNoPrediction,
		},
		{
			name:    "negative index",
			index:   -1,
			target:  "es",
			wantErr: ErrNoPrediction,
		},
		{
			name:   "history failure keeps the translation",
			index:  2,
			target: "de",
			setupMock: func(s *Session, m sessionMocks) {
				m.translator.EXPECT().Translate(gomock.Any(), "en", "de", "Egyptian cat").Return(translator.Result{Text: "Ägyptische Mau"})
				m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			want:       translator.Result{Text: "Ägyptische Mau"},
			wantAnyErr: true,
			wantState: &Translation{
				Prediction: catPredictions[2],
				TargetCode: "de",
				TargetName: "German",
				Result:     translator.Result{Text: "Ägyptische Mau"},
			},
		},
		{
			name:   "cleared while translating still records",
			index:  0,
			target: "it",
			setupMock: func(s *Session, m sessionMocks) {
				m.translator.EXPECT().
					Translate(gomock.Any(), "en", "it", "tabby").
					DoAndReturn(func(ctx context.Context, source, target, text string) translator.Result {
						s.Clear()
						return translator.Result{Text: "soriano"}
					})
				m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			},
			want:    translator.Result{Text: "soriano"},
			wantErr: ErrStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestSession(t)
			m.classifier.EXPECT().ClassifyFile(gomock.Any(), gomock.Any()).Return(catPredictions, nil)
			_, err := s.Submit(context.Background(), []byte("cat.jpg"))
			require.NoError(t, err)
			if tt.setupMock != nil {
				tt.setupMock(s, m)
			}

			got, err := s.Translate(context.Background(), tt.index, tt.target)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAnyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			if tt.wantErr == ErrNoPrediction {
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantState, s.Snapshot().Translation)
		})
	}
}

func TestSession_Translate_BeforeSubmit(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Translate(context.Background(), 0, "es")
	assert.ErrorIs(t, err, ErrNoPrediction)
}

func TestSession_SubmitClearsTranslation(t *testing.T) {
	s, m := newTestSession(t)
	m.classifier.EXPECT().ClassifyFile(gomock.Any(), gomock.Any()).Return(catPredictions, nil).Times(2)
	m.translator.EXPECT().Translate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(translator.Result{Text: "gato"})
	m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.Submit(context.Background(), []byte("a"))
	require.NoError(t, err)
	_, err = s.Translate(context.Background(), 0, "es")
	require.NoError(t, err)
	require.NotNil(t, s.Snapshot().Translation)

	_, err = s.Submit(context.Background(), []byte("b"))
	require.NoError(t, err)
	assert.Nil(t, s.Snapshot().Translation)
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s, m := newTestSession(t)
	m.classifier.EXPECT().ClassifyFile(gomock.Any(), gomock.Any()).Return(append([]classifier.Prediction(nil), catPredictions...), nil)

	got, err := s.Submit(context.Background(), []byte("a"))
	require.NoError(t, err)
	got[0].Label = "changed"

	state := s.Snapshot()
	state.Predictions[1].Label = "changed"

	assert.Equal(t, catPredictions, s.Snapshot().Predictions)
}

func TestWithSourceLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	classifierMock := mock_pipeline.NewMockClassifier(ctrl)
	translatorMock := mock_pipeline.NewMockTranslator(ctrl)
	s := NewSession(classifierMock, translatorMock, mock_pipeline.NewMockRecorder(ctrl), WithSourceLanguage("auto"))

	classifierMock.EXPECT().ClassifyFile(gomock.Any(), gomock.Any()).Return(catPredictions, nil)
	translatorMock.EXPECT().Translate(gomock.Any(), "auto", "xx", "tabby").
		Return(translator.Result{Failure: translator.FailureUnsupportedLanguage})

	_, err := s.Submit(context.Background(), []byte("a"))
	require.NoError(t, err)
	got, err := s.Translate(context.Background(), 0, "xx")
	require.NoError(t, err)
	assert.Equal(t, translator.FailureUnsupportedLanguage, got.Failure)
	assert.Equal(t, "", s.Snapshot().Translation.TargetName)
}
