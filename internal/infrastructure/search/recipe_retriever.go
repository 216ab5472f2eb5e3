package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/platewise/platewise/internal/ports/outbound"
	apperrors "github.com/platewise/platewise/pkg/errors"
	"go.uber.org/zap"
)

// RecipeEntry is one indexed recipe with its precomputed ingredient
// embedding.
type RecipeEntry struct {
	Name        string    `json:"name"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	Embedding   []float32 `json:"embedding"`
}

// RecipeHit is a scored retrieval result.
type RecipeHit struct {
	Name        string  `json:"name"`
	Ingredients string  `json:"ingredients"`
	Steps       string  `json:"steps"`
	Score       float64 `json:"score"`
}

// RecipeRetriever answers "what can I cook" style queries against the
// recipe index.
type RecipeRetriever struct {
	entries  []RecipeEntry
	embedder outbound.Embedder
	topK     int
	logger   *zap.Logger
}

// NewRecipeRetriever loads the recipe index from indexPath. A missing or
// empty index is not fatal at startup; searches against it fail with an
// index-not-loaded error instead.
func NewRecipeRetriever(indexPath string, topK int, embedder outbound.Embedder, logger *zap.Logger) *RecipeRetriever {
	r := &RecipeRetriever{
		embedder: embedder,
		topK:     topK,
		logger:   logger.Named("recipe-retriever"),
	}

	entries, err := loadRecipeIndex(indexPath)
	if err != nil {
		r.logger.Warn("recipe index not loaded",
			zap.String("path", indexPath),
			zap.Error(err))
		return r
	}
	r.entries = entries
	r.logger.Info("recipe index loaded",
		zap.String("path", indexPath),
		zap.Int("entries", len(entries)))
	return r
}

// Search returns the top-k recipes most similar to the query.
func (r *RecipeRetriever) Search(ctx context.Context, query string) ([]RecipeHit, error) {
	if len(r.entries) == 0 {
		return nil, apperrors.New(apperrors.CodeIndexNotLoaded, "recipe index is not loaded", "")
	}

	queryEmbedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("embedder", err)
	}

	scores := make([]float64, len(r.entries))
	for i, entry := range r.entries {
		scores[i] = cosineSimilarity(queryEmbedding, entry.Embedding)
	}

	hits := make([]RecipeHit, 0, r.topK)
	for _, i := range topIndices(scores, r.topK) {
		hits = append(hits, RecipeHit{
			Name:        r.entries[i].Name,
			Ingredients: r.entries[i].Ingredients,
			Steps:       r.entries[i].Steps,
			Score:       scores[i],
		})
	}
	return hits, nil
}

func loadRecipeIndex(path string) ([]RecipeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	var entries []RecipeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}
	return entries, nil
}
