package apiserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/platewise/platewise/pkg/errors"
	"go.uber.org/zap"
)

// analyzeRequest is the meal analysis request body. Standard recipe
// expansion defaults to on; clients disable it to treat the input as a
// flat ingredient list.
type analyzeRequest struct {
	Text              string `json:"text" binding:"required"`
	UseStandardRecipe *bool  `json:"use_standard_recipe"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperrors.NewBadRequestError("text is required"))
		return
	}

	useStandardRecipe := true
	if req.UseStandardRecipe != nil {
		useStandardRecipe = *req.UseStandardRecipe
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), req.Text, useStandardRecipe)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRecipeSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		s.respondError(c, apperrors.NewBadRequestError("query parameter q is required"))
		return
	}

	hits, err := s.recipes.Search(c.Request.Context(), query)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": hits})
}

func (s *Server) handleFAQSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		s.respondError(c, apperrors.NewBadRequestError("query parameter q is required"))
		return
	}

	hits, err := s.faq.Search(c.Request.Context(), query)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": hits})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
	})
}

// respondError maps application errors onto HTTP responses. Unknown
// errors become opaque 500s so internals never leak to clients.
func (s *Server) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), gin.H{"error": appErr})
		return
	}

	s.logger.Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": apperrors.NewInternalError("internal server error"),
	})
}
