package schedule

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockPlaceSearcher is a mock implementation of PlaceSearcher
type MockPlaceSearcher struct {
	mock.Mock
}

func (m *MockPlaceSearcher) SearchSimilar(ctx context.Context, query string, tag string, limit int) ([]types.PlaceCandidate, error) {
	args := m.Called(ctx, query, tag, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PlaceCandidate), args.Error(1)
}

// MockHoursClassifier is a mock implementation of HoursClassifier
type MockHoursClassifier struct {
	mock.Mock
}

func (m *MockHoursClassifier) IsOpen(ctx context.Context, openingHours string, visitTime time.Time, weekday string) (bool, error) {
	args := m.Called(ctx, openingHours, visitTime, weekday)
	return args.Bool(0), args.Error(1)
}

// MockTagProvider is a mock implementation of TagProvider
type MockTagProvider struct {
	mock.Mock
}

func (m *MockTagProvider) GetUserTags(ctx context.Context, username string) (types.InterestTagSet, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.InterestTagSet), args.Error(1)
}

// MockContentGenerator is a mock implementation of ContentGenerator
type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func newTestService(tags *MockTagProvider, searcher *MockPlaceSearcher, hours *MockHoursClassifier, cfg Config) *ServiceImpl {
	return NewServiceImpl(tags, searcher, hours, cfg, testLogger())
}
