package places

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s stubEmbedder) GenerateQueryEmbedding(ctx context.Context, text string) ([]float32, error) {
	return s.vector, s.err
}

var placeColumns = []string{
	"place_id", "name", "category", "address",
	"latitude", "longitude", "rating", "opening_hours", "website",
}

func TestSearchSimilar(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	embedding := []float32{0.1, 0.2, 0.3}
	repo := NewPostgresRepository(mockPool, stubEmbedder{vector: embedding}, testLogger())

	lat, lon, rating := 37.5712, 126.9840, 4.5
	address, hours, website := "12 Insadong-gil", "daily 11:00-23:00", "https://stoneoven.example"
	mockPool.ExpectQuery(`SELECT place_id, name, category, address, latitude, longitude, rating, opening_hours, website`).
		WithArgs(vectorLiteral(embedding), "pizza", 2).
		WillReturnRows(pgxmock.NewRows(placeColumns).
			AddRow("p1", "Stone Oven", "pizza", &address, &lat, &lon, &rating, &hours, &website).
			AddRow("p2", "Midnight Slice", "pizza", nil, nil, nil, nil, nil, nil))

	got, err := repo.SearchSimilar(context.Background(), "best pizza", "pizza", 2)

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p1", got[0].PlaceID)
	assert.Equal(t, "Stone Oven", got[0].Name)
	assert.Equal(t, "12 Insadong-gil", got[0].Address)
	require.NotNil(t, got[0].Latitude)
	assert.InDelta(t, lat, *got[0].Latitude, 1e-9)
	assert.Equal(t, "daily 11:00-23:00", got[0].OpeningHours)

	// Nullable columns come back as zero values, not a scan failure.
	assert.Equal(t, "p2", got[1].PlaceID)
	assert.Empty(t, got[1].Address)
	assert.Nil(t, got[1].Latitude)
	assert.Empty(t, got[1].OpeningHours)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSearchSimilarNoTagFilter(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	embedding := []float32{0.5}
	repo := NewPostgresRepository(mockPool, stubEmbedder{vector: embedding}, testLogger())

	mockPool.ExpectQuery(`SELECT place_id, name, category`).
		WithArgs(vectorLiteral(embedding), "", 10).
		WillReturnRows(pgxmock.NewRows(placeColumns))

	got, err := repo.SearchSimilar(context.Background(), "somewhere nice", "", 10)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSearchSimilarEmbeddingFailure(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRepository(mockPool, stubEmbedder{err: errors.New("quota exceeded")}, testLogger())

	got, err := repo.SearchSimilar(context.Background(), "best pizza", "pizza", 2)

	assert.Error(t, err)
	assert.Nil(t, got)
	// The database is never reached when embedding fails.
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSearchSimilarQueryFailure(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	embedding := []float32{0.1}
	repo := NewPostgresRepository(mockPool, stubEmbedder{vector: embedding}, testLogger())

	mockPool.ExpectQuery(`SELECT place_id`).
		WithArgs(vectorLiteral(embedding), "pizza", 2).
		WillReturnError(errors.New("connection reset"))

	got, err := repo.SearchSimilar(context.Background(), "best pizza", "pizza", 2)

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestVectorLiteral(t *testing.T) {
	assert.Equal(t, "[]", vectorLiteral(nil))
	assert.Equal(t, "[0.500000]", vectorLiteral([]float32{0.5}))
	assert.Equal(t, "[1.000000,-0.250000]", vectorLiteral([]float32{1, -0.25}))
}
