package places

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// Querier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// EmbeddingProvider turns query text into a vector for the index lookup.
type EmbeddingProvider interface {
	GenerateQueryEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRepository)(nil)

// Repository defines the contract for semantic place search. Building and
// maintaining the underlying index is someone else's job; this only queries.
type Repository interface {
	// SearchSimilar returns up to limit places ranked by semantic similarity
	// to the query text. A non-empty tag restricts results to that category.
	SearchSimilar(ctx context.Context, query string, tag string, limit int) ([]types.PlaceCandidate, error)
}

type PostgresRepository struct {
	logger     *slog.Logger
	db         Querier
	embeddings EmbeddingProvider
}

func NewPostgresRepository(db Querier, embeddings EmbeddingProvider, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger:     logger,
		db:         db,
		embeddings: embeddings,
	}
}

// SearchSimilar implements Repository using pgvector cosine distance.
func (r *PostgresRepository) SearchSimilar(ctx context.Context, query string, tag string, limit int) ([]types.PlaceCandidate, error) {
	ctx, span := otel.Tracer("PlacesRepo").Start(ctx, "SearchSimilar", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "places"),
		attribute.String("search.tag", tag),
		attribute.Int("search.limit", limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SearchSimilar"), slog.String("tag", tag))

	embedding, err := r.embeddings.GenerateQueryEmbedding(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to embed search query", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query embedding failed")
		return nil, fmt.Errorf("failed to embed search query: %w", err)
	}

	sqlQuery := `
        SELECT place_id, name, category, address, latitude, longitude, rating, opening_hours, website
        FROM places
        WHERE embedding IS NOT NULL AND ($2 = '' OR category = $2)
        ORDER BY embedding <=> $1::vector
        LIMIT $3`

	rows, err := r.db.Query(ctx, sqlQuery, vectorLiteral(embedding), tag, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query similar places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error searching places: %w", err)
	}
	defer rows.Close()

	var candidates []types.PlaceCandidate
	for rows.Next() {
		var c types.PlaceCandidate
		var address, openingHours, website *string
		err := rows.Scan(
			&c.PlaceID,
			&c.Name,
			&c.Category,
			&address,
			&c.Latitude,
			&c.Longitude,
			&c.Rating,
			&openingHours,
			&website,
		)
		if err != nil {
			l.ErrorContext(ctx, "Failed to scan place row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		if address != nil {
			c.Address = *address
		}
		if openingHours != nil {
			c.OpeningHours = *openingHours
		}
		if website != nil {
			c.Website = *website
		}
		candidates = append(candidates, c)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating place rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating place rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(candidates)))
	span.SetStatus(codes.Ok, "Similar places found")
	return candidates, nil
}

// vectorLiteral renders an embedding in pgvector's input format.
func vectorLiteral(embedding []float32) string {
	strs := make([]string, len(embedding))
	for i, v := range embedding {
		strs[i] = fmt.Sprintf("%f", v)
	}
	return fmt.Sprintf("[%s]", strings.Join(strs, ","))
}
