package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-lazy-traveler/app/db"
	"github.com/FACorreiaa/go-lazy-traveler/config"
	"github.com/FACorreiaa/go-lazy-traveler/internal/api/faq"
	generativeAI "github.com/FACorreiaa/go-lazy-traveler/internal/api/generative_ai"
	"github.com/FACorreiaa/go-lazy-traveler/internal/api/intent"
	"github.com/FACorreiaa/go-lazy-traveler/internal/api/places"
	"github.com/FACorreiaa/go-lazy-traveler/internal/api/schedule"
	userTags "github.com/FACorreiaa/go-lazy-traveler/internal/api/user_tags"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool
	Router intent.Service
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	// LLM collaborators
	aiClient, err := generativeAI.NewAIClient(ctx)
	if err != nil {
		pool.Close()
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		return nil, err
	}
	embeddingService, err := generativeAI.NewEmbeddingService(ctx, logger)
	if err != nil {
		pool.Close()
		logger.Error("Failed to initialize embedding service", slog.Any("error", err))
		return nil, err
	}

	rec := cfg.Recommendation

	// Repositories
	placesRepo := places.NewPostgresRepository(pool, embeddingService, logger)
	faqRepo := faq.NewPostgresRepository(pool, embeddingService, logger)
	tagsRepo := userTags.NewPostgresRepository(pool, logger)

	// Services
	placeService := places.NewServiceImpl(placesRepo, logger, rec.PlaceSearchK, rec.PlaceResultLimit)
	faqService := faq.NewServiceImpl(faqRepo, logger, rec.FAQScoreThreshold)
	scheduleService := schedule.NewServiceImpl(
		tagsRepo,
		placesRepo,
		schedule.NewGeminiHoursClassifier(aiClient, logger),
		schedule.Config{
			DefaultLatitude:    rec.DefaultLatitude,
			DefaultLongitude:   rec.DefaultLongitude,
			RetrievalK:         rec.RetrievalK,
			MaxTagsPerCategory: rec.MaxTagsPerCategory,
			MaxConcurrentCalls: rec.MaxConcurrentCalls,
			CallTimeout:        rec.LLMCallTimeout,
			VerdictCacheTTL:    rec.OpenVerdictCacheTTL,
		},
		logger,
	)

	router := intent.NewServiceImpl(
		intent.NewGeminiClassifier(aiClient, logger),
		faqService,
		placeService,
		scheduleService,
		intent.Config{
			ClassifyTimeout:  rec.LLMCallTimeout,
			DefaultLatitude:  rec.DefaultLatitude,
			DefaultLongitude: rec.DefaultLongitude,
		},
		logger,
	)

	return &Container{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
		Router: router,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
