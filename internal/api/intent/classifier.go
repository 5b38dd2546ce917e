package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// ErrUnrecognizedLabel is returned when the classifier answers with a label
// outside the allowed set. The router absorbs it into the unknown route.
var ErrUnrecognizedLabel = errors.New("classifier returned an unrecognized label")

// Classifier assigns a query to exactly one of the four known intents.
type Classifier interface {
	Classify(ctx context.Context, query string) (types.Intent, error)
}

// ContentGenerator is the LLM collaborator behind GeminiClassifier;
// satisfied by generativeAI.AIClient.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

const classifyPrompt = `Classify the user's request into exactly one category.

Categories:
- function: questions about how to use this app (signing up, logging in, editing tags, ...)
- place: a request to recommend or look up specific places
- schedule: a request to plan an itinerary or schedule the user's day
- unknown: anything else

User request: %s

Answer with exactly one word: function, place, schedule or unknown.`

// Ensure implementation satisfies the interface
var _ Classifier = (*GeminiClassifier)(nil)

// GeminiClassifier classifies queries with the LLM, constrained to the four
// known labels.
type GeminiClassifier struct {
	logger *slog.Logger
	ai     ContentGenerator
}

func NewGeminiClassifier(ai ContentGenerator, logger *slog.Logger) *GeminiClassifier {
	return &GeminiClassifier{logger: logger, ai: ai}
}

func (c *GeminiClassifier) Classify(ctx context.Context, query string) (types.Intent, error) {
	ctx, span := otel.Tracer("GeminiClassifier").Start(ctx, "Classify")
	defer span.End()

	answer, err := c.ai.GenerateContent(ctx, fmt.Sprintf(classifyPrompt, query), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Classification call failed")
		return "", fmt.Errorf("error classifying query: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(answer))
	if !types.ValidIntent(label) {
		err := fmt.Errorf("%w: %q", ErrUnrecognizedLabel, label)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unrecognized label")
		return "", err
	}

	span.SetStatus(codes.Ok, "Query classified")
	return types.Intent(label), nil
}
