package places

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for the place-lookup path.
type Service interface {
	// SearchNearby runs a semantic search for the query and returns the
	// closest results to the user's position, nearest first.
	SearchNearby(ctx context.Context, query string, userLat, userLon float64) ([]types.PlaceCandidate, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger      *slog.Logger
	repo        Repository
	searchK     int
	resultLimit int
}

// NewServiceImpl creates a new place service instance. searchK is how many
// hits the semantic index is asked for before distance ranking; resultLimit
// is how many survive it.
func NewServiceImpl(repo Repository, logger *slog.Logger, searchK, resultLimit int) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		repo:        repo,
		searchK:     searchK,
		resultLimit: resultLimit,
	}
}

// SearchNearby fetches candidates from the index, ranks them by distance
// and returns the top results.
func (s *ServiceImpl) SearchNearby(ctx context.Context, query string, userLat, userLon float64) ([]types.PlaceCandidate, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "SearchNearby", trace.WithAttributes(
		attribute.Float64("user.latitude", userLat),
		attribute.Float64("user.longitude", userLon),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "SearchNearby"))
	l.DebugContext(ctx, "Searching places near user", slog.Int("k", s.searchK))

	candidates, err := s.repo.SearchSimilar(ctx, query, "", s.searchK)
	if err != nil {
		l.ErrorContext(ctx, "Failed to search places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Place search failed")
		return nil, fmt.Errorf("error searching places: %w", err)
	}

	sorted := SortByDistance(candidates, userLat, userLon)
	if len(sorted) > s.resultLimit {
		sorted = sorted[:s.resultLimit]
	}

	l.InfoContext(ctx, "Place search completed", slog.Int("count", len(sorted)))
	span.SetAttributes(attribute.Int("results.count", len(sorted)))
	span.SetStatus(codes.Ok, "Place search completed")
	return sorted, nil
}
