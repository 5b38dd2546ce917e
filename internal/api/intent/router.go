package intent

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-lazy-traveler/internal/api/faq"
	"github.com/FACorreiaa/go-lazy-traveler/internal/api/places"
	"github.com/FACorreiaa/go-lazy-traveler/internal/api/schedule"
	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// UnknownMessage is the guidance returned on the unknown route.
const UnknownMessage = "Sorry! I can help with app features, place recommendations and day scheduling. Try 'how do I sign up', 'plan my day' or 'recommend a good restaurant'."

// placeSearchFailedMessage keeps the place route best-effort when the index
// is unreachable.
const placeSearchFailedMessage = "Sorry, place search is unavailable right now. Please try again in a moment."

// Config carries the router's own tunables; the pipeline keeps its own.
type Config struct {
	// ClassifyTimeout bounds the classification call; a timeout routes to
	// unknown rather than stalling the request.
	ClassifyTimeout  time.Duration
	DefaultLatitude  float64
	DefaultLongitude float64
}

func (c Config) withDefaults() Config {
	if c.ClassifyTimeout <= 0 {
		c.ClassifyTimeout = 10 * time.Second
	}
	if c.DefaultLatitude == 0 && c.DefaultLongitude == 0 {
		c.DefaultLatitude, c.DefaultLongitude = 37.5704, 126.9831
	}
	return c
}

// Request is one user query plus its context.
type Request struct {
	Query     string
	Username  string
	Latitude  *float64
	Longitude *float64
	Now       time.Time
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service classifies a query and dispatches it to the matching path.
type Service interface {
	Route(ctx context.Context, req Request) (types.RouteResult, error)
}

// ServiceImpl provides the implementation for Service. The dispatch is a
// fixed lookup: one classifying step, four terminal handlers. A malformed
// classification is absorbed into the unknown route, never retried;
// misclassification costs presentation quality, not correctness.
type ServiceImpl struct {
	logger     *slog.Logger
	cfg        Config
	classifier Classifier
	faq        faq.Service
	places     places.Service
	schedule   schedule.Service
}

// NewServiceImpl creates a new intent router instance.
func NewServiceImpl(classifier Classifier, faqSvc faq.Service, placeSvc places.Service, scheduleSvc schedule.Service, cfg Config, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		cfg:        cfg.withDefaults(),
		classifier: classifier,
		faq:        faqSvc,
		places:     placeSvc,
		schedule:   scheduleSvc,
	}
}

// Route implements Service.
func (s *ServiceImpl) Route(ctx context.Context, req Request) (types.RouteResult, error) {
	requestID := uuid.NewString()
	ctx, span := otel.Tracer("IntentRouter").Start(ctx, "Route", trace.WithAttributes(
		attribute.String("request.id", requestID),
	))
	defer span.End()

	l := s.logger.With(
		slog.String("method", "Route"),
		slog.String("request_id", requestID),
		slog.String("username", req.Username),
	)

	classifyCtx, cancel := context.WithTimeout(ctx, s.cfg.ClassifyTimeout)
	classified, err := s.classifier.Classify(classifyCtx, req.Query)
	cancel()
	if err != nil {
		l.WarnContext(ctx, "Classification failed, routing to unknown", slog.Any("error", err))
		span.RecordError(err)
		classified = types.IntentUnknown
	}
	span.SetAttributes(attribute.String("intent", string(classified)))
	l.DebugContext(ctx, "Query classified", slog.String("intent", string(classified)))

	switch classified {
	case types.IntentFunction:
		return s.routeFunction(ctx, req)
	case types.IntentPlace:
		return s.routePlace(ctx, req)
	case types.IntentSchedule:
		return s.routeSchedule(ctx, req)
	default:
		span.SetStatus(codes.Ok, "Routed to unknown")
		return types.RouteResult{Intent: types.IntentUnknown, Message: UnknownMessage}, nil
	}
}

func (s *ServiceImpl) routeFunction(ctx context.Context, req Request) (types.RouteResult, error) {
	answer, err := s.faq.Answer(ctx, req.Query)
	if err != nil {
		// The FAQ service already degrades internally; this is belt and
		// braces for future implementations.
		s.logger.WarnContext(ctx, "FAQ answer failed", slog.Any("error", err))
		answer = faq.NotFoundAnswer
	}
	return types.RouteResult{Intent: types.IntentFunction, Answer: answer}, nil
}

func (s *ServiceImpl) routePlace(ctx context.Context, req Request) (types.RouteResult, error) {
	lat, lon := s.cfg.DefaultLatitude, s.cfg.DefaultLongitude
	if req.Latitude != nil && req.Longitude != nil {
		lat, lon = *req.Latitude, *req.Longitude
	}

	found, err := s.places.SearchNearby(ctx, req.Query, lat, lon)
	if err != nil {
		s.logger.WarnContext(ctx, "Place search failed", slog.Any("error", err))
		return types.RouteResult{Intent: types.IntentPlace, Message: placeSearchFailedMessage}, nil
	}
	return types.RouteResult{Intent: types.IntentPlace, Places: found}, nil
}

func (s *ServiceImpl) routeSchedule(ctx context.Context, req Request) (types.RouteResult, error) {
	result, err := s.schedule.BuildSchedule(ctx, schedule.Request{
		Query:     req.Query,
		Username:  req.Username,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Now:       req.Now,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Schedule pipeline failed", slog.Any("error", err))
		return types.RouteResult{Intent: types.IntentSchedule, Message: UnknownMessage}, nil
	}
	if result.Template.Unavailable() {
		return types.RouteResult{Intent: types.IntentSchedule, Message: result.Template.Reason}, nil
	}
	return types.RouteResult{Intent: types.IntentSchedule, Itinerary: result.Itinerary}, nil
}
