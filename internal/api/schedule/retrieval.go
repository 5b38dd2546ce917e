package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// PlaceSearcher is the semantic index collaborator used during retrieval;
// satisfied by the places repository.
type PlaceSearcher interface {
	SearchSimilar(ctx context.Context, query string, tag string, limit int) ([]types.PlaceCandidate, error)
}

type tagQuery struct {
	category string
	tag      string
}

// retrieveCandidates issues one semantic query per (category, sub-tag) pair
// and merges the results, deduplicating by place ID with earlier categories
// keeping priority. Queries run concurrently under a bounded group but the
// merge order stays deterministic. A failed sub-query is skipped, never
// fatal for the stage; the per-category tag cap bounds total fan-out.
func (s *ServiceImpl) retrieveCandidates(ctx context.Context, userQuery string, mapping types.PreferredTagMapping) []types.PlaceCandidate {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "retrieveCandidates")
	defer span.End()

	l := s.logger.With(slog.String("method", "retrieveCandidates"))

	var pairs []tagQuery
	for _, pref := range mapping {
		tags := pref.Preferred
		if s.cfg.MaxTagsPerCategory > 0 && len(tags) > s.cfg.MaxTagsPerCategory {
			tags = tags[:s.cfg.MaxTagsPerCategory]
		}
		for _, tag := range tags {
			pairs = append(pairs, tagQuery{category: pref.Category, tag: tag})
		}
	}
	span.SetAttributes(attribute.Int("fanout.queries", len(pairs)))

	results := make([][]types.PlaceCandidate, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentCalls)
	for i, pair := range pairs {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.cfg.CallTimeout)
			defer cancel()

			found, err := s.searcher.SearchSimilar(callCtx, fmt.Sprintf("%s %s", userQuery, pair.tag), pair.tag, s.cfg.RetrievalK)
			if err != nil {
				// One failed sub-query only loses that pair.
				l.WarnContext(gctx, "Sub-tag search failed, skipping pair",
					slog.String("category", pair.category),
					slog.String("tag", pair.tag),
					slog.Any("error", err))
				return nil
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	var merged []types.PlaceCandidate
	seen := make(map[string]struct{})
	for _, batch := range results {
		for _, c := range batch {
			if c.PlaceID == "" {
				continue
			}
			if _, dup := seen[c.PlaceID]; dup {
				continue
			}
			seen[c.PlaceID] = struct{}{}
			merged = append(merged, c)
		}
	}

	l.DebugContext(ctx, "Candidate retrieval completed",
		slog.Int("queries", len(pairs)),
		slog.Int("candidates", len(merged)))
	span.SetAttributes(attribute.Int("results.count", len(merged)))
	span.SetStatus(codes.Ok, "Candidates retrieved")
	return merged
}
