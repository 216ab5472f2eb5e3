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

// FAQEntry is one indexed question/answer pair with its precomputed
// question embedding.
type FAQEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Embedding []float32 `json:"embedding"`
}

// FAQHit is a scored retrieval result.
type FAQHit struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// FAQRetriever answers nutrition questions against the FAQ index.
type FAQRetriever struct {
	entries  []FAQEntry
	embedder outbound.Embedder
	topK     int
	logger   *zap.Logger
}

// NewFAQRetriever loads the FAQ index from indexPath. As with the recipe
// index, a missing file degrades to index-not-loaded errors at query time.
func NewFAQRetriever(indexPath string, topK int, embedder outbound.Embedder, logger *zap.Logger) *FAQRetriever {
	r := &FAQRetriever{
		embedder: embedder,
		topK:     topK,
		logger:   logger.Named("faq-retriever"),
	}

	entries, err := loadFAQIndex(indexPath)
	if err != nil {
		r.logger.Warn("faq index not loaded",
			zap.String("path", indexPath),
			zap.Error(err))
		return r
	}
	r.entries = entries
	r.logger.Info("faq index loaded",
		zap.String("path", indexPath),
		zap.Int("entries", len(entries)))
	return r
}

// Search returns the top-k FAQ entries most similar to the query.
func (r *FAQRetriever) Search(ctx context.Context, query string) ([]FAQHit, error) {
	if len(r.entries) == 0 {
		return nil, apperrors.New(apperrors.CodeIndexNotLoaded, "faq index is not loaded", "")
	}

	queryEmbedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("embedder", err)
	}

	scores := make([]float64, len(r.entries))
	for i, entry := range r.entries {
		scores[i] = cosineSimilarity(queryEmbedding, entry.Embedding)
	}

	hits := make([]FAQHit, 0, r.topK)
	for _, i := range topIndices(scores, r.topK) {
		hits = append(hits, FAQHit{
			Question: r.entries[i].Question,
			Answer:   r.entries[i].Answer,
			Score:    scores[i],
		})
	}
	return hits, nil
}

func loadFAQIndex(path string) ([]FAQEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	var entries []FAQEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}
	return entries, nil
}
