// Package search provides embedding-based retrieval over precomputed
// JSON indexes. Query vectors come from the embedder port; matching is
// plain cosine similarity over the cached entry vectors.
package search

import (
	"math"
	"sort"
)

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// topIndices returns the indices of the k highest scores, best first.
func topIndices(scores []float64, k int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})
	if k > len(indices) {
		k = len(indices)
	}
	return indices[:k]
}
