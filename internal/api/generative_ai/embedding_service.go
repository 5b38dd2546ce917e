package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// EmbeddingService turns query text into vectors for the pgvector indexes.
type EmbeddingService struct {
	client *genai.Client
	logger *slog.Logger
}

func NewEmbeddingService(ctx context.Context, logger *slog.Logger) (*EmbeddingService, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &EmbeddingService{client: client, logger: logger}, nil
}

// GenerateQueryEmbedding embeds a search query.
func (s *EmbeddingService) GenerateQueryEmbedding(ctx context.Context, text string) ([]float32, error) {
	ctx, span := otel.Tracer("EmbeddingService").Start(ctx, "GenerateQueryEmbedding", trace.WithAttributes(
		attribute.Int("text.length", len(text)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GenerateQueryEmbedding"))

	resp, err := s.client.Models.EmbedContent(ctx, embeddingModel, genai.Text(text), nil)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate query embedding", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Embedding generation failed")
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		err := fmt.Errorf("embedding response contained no values")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty embedding response")
		return nil, err
	}

	span.SetAttributes(attribute.Int("embedding.dimension", len(resp.Embeddings[0].Values)))
	span.SetStatus(codes.Ok, "Query embedding generated")
	return resp.Embeddings[0].Values, nil
}
