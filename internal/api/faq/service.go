package faq

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NotFoundAnswer is returned when no FAQ entry is close enough to the query.
const NotFoundAnswer = "Sorry, I couldn't find anything about that feature."

// DefaultScoreThreshold is the maximum vector distance still considered a
// match; above it the hit is treated as unrelated.
const DefaultScoreThreshold = 1.1

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for the function-FAQ path.
type Service interface {
	// Answer returns the canned answer for a feature question, or the
	// not-found message. Lookup failures degrade to not-found.
	Answer(ctx context.Context, query string) (string, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger         *slog.Logger
	repo           Repository
	scoreThreshold float64
}

// NewServiceImpl creates a new FAQ service instance. A non-positive
// threshold falls back to the default.
func NewServiceImpl(repo Repository, logger *slog.Logger, scoreThreshold float64) *ServiceImpl {
	if scoreThreshold <= 0 {
		scoreThreshold = DefaultScoreThreshold
	}
	return &ServiceImpl{
		logger:         logger,
		repo:           repo,
		scoreThreshold: scoreThreshold,
	}
}

// Answer looks up the closest FAQ entry and applies the score threshold.
func (s *ServiceImpl) Answer(ctx context.Context, query string) (string, error) {
	ctx, span := otel.Tracer("FAQService").Start(ctx, "Answer")
	defer span.End()

	l := s.logger.With(slog.String("method", "Answer"))

	answer, score, err := s.repo.FindClosestAnswer(ctx, query)
	if err != nil {
		// A feature question that cannot be answered is not a failure.
		l.WarnContext(ctx, "FAQ lookup failed, returning not-found answer", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "Lookup failed, degraded to not-found")
		return NotFoundAnswer, nil
	}
	if score > s.scoreThreshold {
		l.DebugContext(ctx, "Closest FAQ entry above threshold",
			slog.Float64("score", score),
			slog.Float64("threshold", s.scoreThreshold))
		span.SetAttributes(attribute.Float64("faq.score", score))
		span.SetStatus(codes.Ok, "No entry within threshold")
		return NotFoundAnswer, nil
	}

	span.SetStatus(codes.Ok, "FAQ answered")
	return answer, nil
}
