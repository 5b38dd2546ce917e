package userTags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// RowQuerier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRepository)(nil)

// Repository is the user-profile collaborator providing declared interest
// tags. An unknown user yields an empty set, not an error.
type Repository interface {
	GetUserTags(ctx context.Context, username string) (types.InterestTagSet, error)
}

type PostgresRepository struct {
	logger *slog.Logger
	db     RowQuerier
}

func NewPostgresRepository(db RowQuerier, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		db:     db,
	}
}

// GetUserTags implements Repository.
func (r *PostgresRepository) GetUserTags(ctx context.Context, username string) (types.InterestTagSet, error) {
	ctx, span := otel.Tracer("UserTagsRepo").Start(ctx, "GetUserTags", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_profiles"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetUserTags"), slog.String("username", username))
	l.DebugContext(ctx, "Fetching user tags")

	query := `
        SELECT tags
        FROM user_profiles
        WHERE username = $1`

	var tags []string
	err := r.db.QueryRow(ctx, query, username).Scan(&tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No profile simply means no preferences.
			l.DebugContext(ctx, "No profile for user, returning empty tag set")
			span.SetStatus(codes.Ok, "No profile for user")
			return nil, nil
		}
		l.ErrorContext(ctx, "Failed to query user tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching user tags: %w", err)
	}

	span.SetAttributes(attribute.Int("tags.count", len(tags)))
	span.SetStatus(codes.Ok, "User tags fetched")
	return types.InterestTagSet(tags), nil
}
