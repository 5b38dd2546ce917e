package intent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockContentGenerator is a mock implementation of ContentGenerator
type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   types.Intent
	}{
		{"Function label", "function", types.IntentFunction},
		{"Place label", "place", types.IntentPlace},
		{"Schedule label", "schedule", types.IntentSchedule},
		{"Unknown label", "unknown", types.IntentUnknown},
		{"Uppercase with whitespace", "  SCHEDULE\n", types.IntentSchedule},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ai := new(MockContentGenerator)
			ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
				Return(tc.answer, nil).Once()
			classifier := NewGeminiClassifier(ai, testLogger())

			got, err := classifier.Classify(context.Background(), "plan my day")

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyUnrecognizedLabel(t *testing.T) {
	ai := new(MockContentGenerator)
	ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("I think this is a scheduling request", nil).Once()
	classifier := NewGeminiClassifier(ai, testLogger())

	got, err := classifier.Classify(context.Background(), "plan my day")

	assert.ErrorIs(t, err, ErrUnrecognizedLabel)
	assert.Empty(t, got)
}

func TestClassifyGenerationFailure(t *testing.T) {
	ai := new(MockContentGenerator)
	ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded")).Once()
	classifier := NewGeminiClassifier(ai, testLogger())

	got, err := classifier.Classify(context.Background(), "plan my day")

	assert.Error(t, err)
	assert.Empty(t, got)
}
