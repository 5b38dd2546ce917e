package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// HoursClassifier decides whether a place is open at the visit time given
// its free-text opening hours.
type HoursClassifier interface {
	IsOpen(ctx context.Context, openingHours string, visitTime time.Time, weekday string) (bool, error)
}

// ContentGenerator is the LLM collaborator behind GeminiHoursClassifier;
// satisfied by generativeAI.AIClient.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// filterOpen keeps only candidates the classifier confirms open at the
// visit time. Checks run concurrently under a bounded group; result order
// follows input order. The policy is fail-closed: classifier errors,
// timeouts and anything but an affirmative verdict exclude the candidate,
// and candidates with no opening-hours data cannot be verified at all.
// Verdicts are cached per (place, weekday, hour) to spare repeat round
// trips within the TTL.
func (s *ServiceImpl) filterOpen(ctx context.Context, candidates []types.PlaceCandidate, now time.Time) []types.PlaceCandidate {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "filterOpen")
	defer span.End()

	l := s.logger.With(slog.String("method", "filterOpen"))
	weekday := now.Weekday().String()

	keep := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentCalls)
	for i, c := range candidates {
		if c.OpeningHours == "" {
			continue
		}
		g.Go(func() error {
			key := fmt.Sprintf("%s|%s|%02d", c.PlaceID, weekday, now.Hour())
			if v, ok := s.verdicts.Get(key); ok {
				keep[i] = v.(bool)
				return nil
			}

			callCtx, cancel := context.WithTimeout(gctx, s.cfg.CallTimeout)
			defer cancel()

			open, err := s.hours.IsOpen(callCtx, c.OpeningHours, now, weekday)
			if err != nil {
				l.WarnContext(gctx, "Opening-hours check failed, excluding candidate",
					slog.String("place_id", c.PlaceID),
					slog.Any("error", err))
				return nil
			}
			s.verdicts.Set(key, open, cache.DefaultExpiration)
			keep[i] = open
			return nil
		})
	}
	_ = g.Wait()

	var open []types.PlaceCandidate
	for i, c := range candidates {
		if keep[i] {
			open = append(open, c)
		}
	}

	l.DebugContext(ctx, "Opening-hours filtering completed",
		slog.Int("checked", len(candidates)),
		slog.Int("open", len(open)))
	span.SetAttributes(attribute.Int("results.count", len(open)))
	span.SetStatus(codes.Ok, "Candidates filtered")
	return open
}

const openingHoursPrompt = `You are checking a venue's opening hours.

Opening hours: %s
Visit time: %s
Weekday: %s

Is the venue open at the visit time? Answer with exactly one word: "open" or "closed".`

// Ensure implementation satisfies the interface
var _ HoursClassifier = (*GeminiHoursClassifier)(nil)

// GeminiHoursClassifier asks the LLM for an open/closed verdict and parses
// the answer by substring match on "open".
type GeminiHoursClassifier struct {
	logger *slog.Logger
	ai     ContentGenerator
}

func NewGeminiHoursClassifier(ai ContentGenerator, logger *slog.Logger) *GeminiHoursClassifier {
	return &GeminiHoursClassifier{logger: logger, ai: ai}
}

func (c *GeminiHoursClassifier) IsOpen(ctx context.Context, openingHours string, visitTime time.Time, weekday string) (bool, error) {
	ctx, span := otel.Tracer("GeminiHoursClassifier").Start(ctx, "IsOpen", trace.WithAttributes(
		attribute.String("weekday", weekday),
	))
	defer span.End()

	prompt := fmt.Sprintf(openingHoursPrompt, openingHours, visitTime.Format("2006-01-02 15:04"), weekday)
	answer, err := c.ai.GenerateContent(ctx, prompt, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Hours classification failed")
		return false, fmt.Errorf("error classifying opening hours: %w", err)
	}

	verdict := strings.ToLower(strings.TrimSpace(answer))
	span.SetStatus(codes.Ok, "Hours classified")
	return strings.Contains(verdict, "open") && !strings.Contains(verdict, "closed"), nil
}
