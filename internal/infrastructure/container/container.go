// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/platewise/platewise/internal/application/analysis"
	"github.com/platewise/platewise/internal/infrastructure/ai/ollama"
	"github.com/platewise/platewise/internal/infrastructure/config"
	"github.com/platewise/platewise/internal/infrastructure/extraction"
	"github.com/platewise/platewise/internal/infrastructure/http/apiserver"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/infrastructure/nutritionapi/usda"
	gormRepo "github.com/platewise/platewise/internal/infrastructure/persistence/gorm"
	"github.com/platewise/platewise/internal/infrastructure/persistence/sqlite"
	"github.com/platewise/platewise/internal/infrastructure/search"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/platewise/platewise/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	ClientModule,
	ServiceModule,
	SearchModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides the recipe store database
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.Database.LogQueries {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ""),
		)

		return db, nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
)

// ClientModule provides external service clients
var ClientModule = fx.Provide(
	fx.Annotate(
		usda.NewClient,
		fx.As(new(outbound.NutritionLookup)),
	),
	ollama.NewClient,
	extraction.NewLexiconExtractor,
)

// ServiceModule provides the analysis pipeline services
var ServiceModule = fx.Provide(
	monitoring.NewMetricsCollector,

	func(
		lookup outbound.NutritionLookup,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) *analysis.NutritionResolver {
		return analysis.NewNutritionResolver(lookup, metrics, log)
	},

	func(
		store outbound.RecipeStore,
		generator *ollama.Client,
		resolver *analysis.NutritionResolver,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) *analysis.DishResolver {
		return analysis.NewDishResolver(store, generator, resolver, metrics, log)
	},

	func(
		lexicon *extraction.LexiconExtractor,
		model *ollama.Client,
		dishes *analysis.DishResolver,
		resolver *analysis.NutritionResolver,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) *analysis.MealAnalyzer {
		// Model-based extraction runs first, lexicon scan second.
		extractors := []outbound.FoodExtractor{model, lexicon}
		return analysis.NewMealAnalyzer(lexicon, extractors, dishes, resolver, metrics, log)
	},
)

// SearchModule provides the similarity retrievers
var SearchModule = fx.Provide(
	func(cfg *config.Config, client *ollama.Client, log *zap.Logger) *search.RecipeRetriever {
		return search.NewRecipeRetriever(cfg.Search.RecipeIndexPath, cfg.Search.TopK, client, log)
	},
	func(cfg *config.Config, client *ollama.Client, log *zap.Logger) *search.FAQRetriever {
		return search.NewFAQRetriever(cfg.Search.FAQIndexPath, cfg.Search.TopK, client, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewServer,
)

// LifecycleModule registers lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Stop(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
