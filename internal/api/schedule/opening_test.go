package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

func openCandidate(id, hours string) types.PlaceCandidate {
	return types.PlaceCandidate{PlaceID: id, Name: id, OpeningHours: hours}
}

func TestFilterOpenKeepsOnlyConfirmedOpen(t *testing.T) {
	hours := new(MockHoursClassifier)
	svc := newTestService(new(MockTagProvider), new(MockPlaceSearcher), hours, Config{})
	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)

	candidates := []types.PlaceCandidate{
		openCandidate("p1", "Mon-Fri 09:00-18:00"),
		openCandidate("p2", "Weekends only"),
	}
	hours.On("IsOpen", mock.Anything, "Mon-Fri 09:00-18:00", now, "Monday").Return(true, nil).Once()
	hours.On("IsOpen", mock.Anything, "Weekends only", now, "Monday").Return(false, nil).Once()

	got := svc.filterOpen(context.Background(), candidates, now)

	assert.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].PlaceID)
	hours.AssertExpectations(t)
}

func TestFilterOpenExcludesMissingHoursWithoutClassifying(t *testing.T) {
	hours := new(MockHoursClassifier)
	svc := newTestService(new(MockTagProvider), new(MockPlaceSearcher), hours, Config{})
	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)

	got := svc.filterOpen(context.Background(), []types.PlaceCandidate{
		openCandidate("p1", ""),
	}, now)

	assert.Empty(t, got)
	hours.AssertNotCalled(t, "IsOpen", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFilterOpenFailsClosedOnError(t *testing.T) {
	hours := new(MockHoursClassifier)
	svc := newTestService(new(MockTagProvider), new(MockPlaceSearcher), hours, Config{})
	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)

	hours.On("IsOpen", mock.Anything, mock.Anything, now, "Monday").
		Return(false, errors.New("model timeout")).Once()

	got := svc.filterOpen(context.Background(), []types.PlaceCandidate{
		openCandidate("p1", "Mon-Fri 09:00-18:00"),
	}, now)

	assert.Empty(t, got)
	hours.AssertExpectations(t)
}

func TestFilterOpenCachesVerdicts(t *testing.T) {
	hours := new(MockHoursClassifier)
	svc := newTestService(new(MockTagProvider), new(MockPlaceSearcher), hours, Config{})
	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)
	candidates := []types.PlaceCandidate{
		openCandidate("p1", "Mon-Fri 09:00-18:00"),
	}

	hours.On("IsOpen", mock.Anything, mock.Anything, now, "Monday").Return(true, nil).Once()

	first := svc.filterOpen(context.Background(), candidates, now)
	second := svc.filterOpen(context.Background(), candidates, now)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	// The second pass for the same place, weekday and hour hits the cache.
	hours.AssertNumberOfCalls(t, "IsOpen", 1)
}

func TestFilterOpenDoesNotCacheFailures(t *testing.T) {
	hours := new(MockHoursClassifier)
	svc := newTestService(new(MockTagProvider), new(MockPlaceSearcher), hours, Config{})
	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)
	candidates := []types.PlaceCandidate{
		openCandidate("p1", "Mon-Fri 09:00-18:00"),
	}

	hours.On("IsOpen", mock.Anything, mock.Anything, now, "Monday").
		Return(false, errors.New("model timeout")).Once()
	hours.On("IsOpen", mock.Anything, mock.Anything, now, "Monday").
		Return(true, nil).Once()

	first := svc.filterOpen(context.Background(), candidates, now)
	second := svc.filterOpen(context.Background(), candidates, now)

	assert.Empty(t, first)
	assert.Len(t, second, 1, "an errored verdict should be retried, not cached")
	hours.AssertNumberOfCalls(t, "IsOpen", 2)
}

func TestFilterOpenPreservesOrder(t *testing.T) {
	hours := new(MockHoursClassifier)
	svc := newTestService(new(MockTagProvider), new(MockPlaceSearcher), hours, Config{})
	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)

	var candidates []types.PlaceCandidate
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		candidates = append(candidates, openCandidate(id, "daily 10:00-22:00 #"+id))
	}
	hours.On("IsOpen", mock.Anything, mock.Anything, now, "Monday").Return(true, nil)

	got := svc.filterOpen(context.Background(), candidates, now)

	assert.Len(t, got, 4)
	for i, c := range candidates {
		assert.Equal(t, c.PlaceID, got[i].PlaceID)
	}
}

func TestGeminiHoursClassifierParsesVerdict(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		wantOpen bool
	}{
		{"Plain open", "open", true},
		{"Uppercase with whitespace", "  OPEN\n", true},
		{"Plain closed", "closed", false},
		{"Contradictory answer stays closed", "open but closed on Mondays", false},
		{"Unrelated answer stays closed", "I cannot tell", false},
	}

	now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.Local)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ai := new(MockContentGenerator)
			ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(tc.answer, nil).Once()
			classifier := NewGeminiHoursClassifier(ai, testLogger())

			open, err := classifier.IsOpen(context.Background(), "Mon-Fri 09:00-18:00", now, "Monday")

			assert.NoError(t, err)
			assert.Equal(t, tc.wantOpen, open)
		})
	}
}

func TestGeminiHoursClassifierPropagatesError(t *testing.T) {
	ai := new(MockContentGenerator)
	ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded")).Once()
	classifier := NewGeminiHoursClassifier(ai, testLogger())

	open, err := classifier.IsOpen(context.Background(), "Mon-Fri 09:00-18:00", time.Now(), "Monday")

	assert.Error(t, err)
	assert.False(t, open)
}
