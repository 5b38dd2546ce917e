package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-lazy-traveler/internal/api/places"
	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// TagProvider supplies a user's declared interest tags; satisfied by the
// user_tags repository.
type TagProvider interface {
	GetUserTags(ctx context.Context, username string) (types.InterestTagSet, error)
}

// Config carries the pipeline tunables. Zero values fall back to the
// production defaults so tests can set only what they care about.
type Config struct {
	DefaultLatitude    float64
	DefaultLongitude   float64
	RetrievalK         int
	MaxTagsPerCategory int
	MaxConcurrentCalls int
	CallTimeout        time.Duration
	VerdictCacheTTL    time.Duration
	Catalog            CategoryCatalog
	Buckets            []HourBucket
}

func (c Config) withDefaults() Config {
	if c.DefaultLatitude == 0 && c.DefaultLongitude == 0 {
		// Jongno, Seoul
		c.DefaultLatitude, c.DefaultLongitude = 37.5704, 126.9831
	}
	if c.RetrievalK <= 0 {
		c.RetrievalK = 2
	}
	if c.MaxTagsPerCategory <= 0 {
		c.MaxTagsPerCategory = 5
	}
	if c.MaxConcurrentCalls <= 0 {
		c.MaxConcurrentCalls = 4
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 10 * time.Second
	}
	if c.VerdictCacheTTL <= 0 {
		c.VerdictCacheTTL = 30 * time.Minute
	}
	if c.Catalog == nil {
		c.Catalog = DefaultCatalog()
	}
	if c.Buckets == nil {
		c.Buckets = DefaultHourBuckets()
	}
	return c
}

// Request describes one scheduling invocation. Nil coordinates fall back to
// the configured default location; a zero Now means the current time.
type Request struct {
	Query     string
	Username  string
	Latitude  *float64
	Longitude *float64
	Now       time.Time
}

// Result is the structured outcome handed to the renderer. Itinerary is nil
// when the template is the unavailable sentinel; its reason is on Template.
type Result struct {
	Template  types.ScheduleTemplate
	Itinerary *types.Itinerary
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary scheduling.
type Service interface {
	BuildSchedule(ctx context.Context, req Request) (Result, error)
}

// ServiceImpl provides the implementation for Service. All request state is
// local to one BuildSchedule call; the only shared structure is the verdict
// cache, which go-cache guards internally.
type ServiceImpl struct {
	logger   *slog.Logger
	cfg      Config
	tags     TagProvider
	searcher PlaceSearcher
	hours    HoursClassifier
	verdicts *cache.Cache
}

// NewServiceImpl creates a new schedule service instance.
func NewServiceImpl(tags TagProvider, searcher PlaceSearcher, hours HoursClassifier, cfg Config, logger *slog.Logger) *ServiceImpl {
	cfg = cfg.withDefaults()
	return &ServiceImpl{
		logger:   logger,
		cfg:      cfg,
		tags:     tags,
		searcher: searcher,
		hours:    hours,
		verdicts: cache.New(cfg.VerdictCacheTTL, cfg.VerdictCacheTTL),
	}
}

// BuildSchedule runs the full pipeline: template selection, preference
// resolution, candidate retrieval, distance sort, opening-hours filtering
// and greedy slot assignment. Stages run strictly in order; fan-out happens
// only inside retrieval and filtering. No external-call failure is fatal:
// each degrades to skip/exclude and the itinerary may simply come out
// shorter than the template asked for.
func (s *ServiceImpl) BuildSchedule(ctx context.Context, req Request) (Result, error) {
	ctx, span := otel.Tracer("ScheduleService").Start(ctx, "BuildSchedule", trace.WithAttributes(
		attribute.String("username", req.Username),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "BuildSchedule"), slog.String("username", req.Username))

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	lat, lon := s.cfg.DefaultLatitude, s.cfg.DefaultLongitude
	if req.Latitude != nil && req.Longitude != nil {
		lat, lon = *req.Latitude, *req.Longitude
	}

	template := SelectTemplate(now, s.cfg.Buckets)
	span.SetAttributes(attribute.String("template", template.Name))
	if template.Unavailable() {
		l.InfoContext(ctx, "Outside schedulable window", slog.Int("hour", now.Hour()))
		span.SetStatus(codes.Ok, "Unavailable window")
		return Result{Template: template}, nil
	}

	tags, err := s.tags.GetUserTags(ctx, req.Username)
	if err != nil {
		// Missing tags only cost personalization, not the schedule.
		l.WarnContext(ctx, "Failed to fetch user tags, using catalog defaults", slog.Any("error", err))
		tags = nil
	}
	mapping := ResolvePreferences(tags, template.Categories, s.cfg.Catalog)

	candidates := s.retrieveCandidates(ctx, req.Query, mapping)
	sorted := places.SortByDistance(candidates, lat, lon)
	open := s.filterOpen(ctx, sorted, now)
	itinerary := BuildItinerary(open, template, mapping, now)

	if len(itinerary.Slots) < len(template.Categories) {
		l.InfoContext(ctx, "Itinerary shorter than requested",
			slog.Int("requested", len(template.Categories)),
			slog.Int("scheduled", len(itinerary.Slots)))
	}

	l.InfoContext(ctx, "Itinerary built",
		slog.String("template", template.Name),
		slog.Int("slots", len(itinerary.Slots)))
	span.SetAttributes(attribute.Int("itinerary.slots", len(itinerary.Slots)))
	span.SetStatus(codes.Ok, "Itinerary built")
	return Result{Template: template, Itinerary: &itinerary}, nil
}
