package faq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoAnswer is returned when the FAQ index has no entries at all.
var ErrNoAnswer = errors.New("no faq answer found")

// RowQuerier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EmbeddingProvider turns query text into a vector for the index lookup.
type EmbeddingProvider interface {
	GenerateQueryEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRepository)(nil)

// Repository looks up the closest function-FAQ entry for a query. Score is
// the vector distance; smaller is closer.
type Repository interface {
	FindClosestAnswer(ctx context.Context, query string) (answer string, score float64, err error)
}

type PostgresRepository struct {
	logger     *slog.Logger
	db         RowQuerier
	embeddings EmbeddingProvider
}

func NewPostgresRepository(db RowQuerier, embeddings EmbeddingProvider, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger:     logger,
		db:         db,
		embeddings: embeddings,
	}
}

// FindClosestAnswer implements Repository using pgvector cosine distance.
func (r *PostgresRepository) FindClosestAnswer(ctx context.Context, query string) (string, float64, error) {
	ctx, span := otel.Tracer("FAQRepo").Start(ctx, "FindClosestAnswer", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "faq_entries"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindClosestAnswer"))

	embedding, err := r.embeddings.GenerateQueryEmbedding(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to embed faq query", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query embedding failed")
		return "", 0, fmt.Errorf("failed to embed faq query: %w", err)
	}

	sqlQuery := `
        SELECT answer, embedding <=> $1::vector AS score
        FROM faq_entries
        WHERE embedding IS NOT NULL
        ORDER BY embedding <=> $1::vector
        LIMIT 1`

	var answer string
	var score float64
	err = r.db.QueryRow(ctx, sqlQuery, vectorLiteral(embedding)).Scan(&answer, &score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Ok, "FAQ index empty")
			return "", 0, ErrNoAnswer
		}
		l.ErrorContext(ctx, "Failed to query faq entries", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return "", 0, fmt.Errorf("database error searching faq entries: %w", err)
	}

	span.SetAttributes(attribute.Float64("faq.score", score))
	span.SetStatus(codes.Ok, "FAQ answer found")
	return answer, score, nil
}

// vectorLiteral renders an embedding in pgvector's input format.
func vectorLiteral(embedding []float32) string {
	strs := make([]string, len(embedding))
	for i, v := range embedding {
		strs[i] = fmt.Sprintf("%f", v)
	}
	return fmt.Sprintf("[%s]", strings.Join(strs, ","))
}
