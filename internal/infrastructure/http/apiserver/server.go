// Package apiserver provides the HTTP API surface: meal analysis,
// retrieval search endpoints, health and metrics.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platewise/platewise/internal/application/analysis"
	"github.com/platewise/platewise/internal/infrastructure/config"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/infrastructure/search"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	server   *http.Server
	analyzer *analysis.MealAnalyzer
	recipes  *search.RecipeRetriever
	faq      *search.FAQRetriever
	metrics  *monitoring.MetricsCollector
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	analyzer *analysis.MealAnalyzer,
	recipes *search.RecipeRetriever,
	faq *search.FAQRetriever,
	metrics *monitoring.MetricsCollector,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:   cfg,
		logger:   logger.Named("api-server"),
		analyzer: analyzer,
		recipes:  recipes,
		faq:      faq,
		metrics:  metrics,
	}

	s.router = s.setupRouter()
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.metrics.GinMiddleware())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.GET("/recipes/search", s.handleRecipeSearch)
		v1.GET("/faq/search", s.handleFAQSearch)
	}

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the underlying router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}
