package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *Client {
	cfg := &config.Config{}
	cfg.Ollama.Host = serverURL
	cfg.Ollama.Model = "mistral"
	cfg.Ollama.EmbeddingModel = "nomic-embed-text"
	cfg.Ollama.Timeout = 5 * time.Second
	return NewClient(cfg, zap.NewNop())
}

func chatServer(t *testing.T, content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(chatResponse{
			Model:   req.Model,
			Message: chatMessage{Role: "assistant", Content: content},
			Done:    true,
		})
	}))
}

func TestGenerateIngredients(t *testing.T) {
	server := chatServer(t, `Here are the ingredients:
["200g elbow macaroni", "100g cheddar cheese", "1 cup milk", "2 tbsp butter"]`)
	defer server.Close()

	client := newTestClient(server.URL)
	ingredients, err := client.GenerateIngredients(context.Background(), "mac and cheese")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"200g elbow macaroni", "100g cheddar cheese", "1 cup milk", "2 tbsp butter",
	}, ingredients)
}

func TestGenerateIngredientsCapsListLength(t *testing.T) {
	server := chatServer(t, `["a1","a2","a3","a4","a5","a6","a7","a8","a9"]`)
	defer server.Close()

	client := newTestClient(server.URL)
	ingredients, err := client.GenerateIngredients(context.Background(), "everything stew")
	require.NoError(t, err)
	assert.Len(t, ingredients, maxGeneratedIngredients)
}

func TestGenerateIngredientsUnparsableResponse(t *testing.T) {
	server := chatServer(t, "I'm sorry, I can't list ingredients for that.")
	defer server.Close()

	client := newTestClient(server.URL)
	ingredients, err := client.GenerateIngredients(context.Background(), "mystery dish")
	require.NoError(t, err)
	assert.Empty(t, ingredients)
}

func TestExtract(t *testing.T) {
	server := chatServer(t, `[
		{"food": "Eggs", "quantity": 2},
		{"food": "toast", "quantity": 0},
		{"food": "", "quantity": 1}
	]`)
	defer server.Close()

	client := newTestClient(server.URL)
	foods, err := client.Extract(context.Background(), "2 eggs with toast")
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "eggs", foods[0].Food)
	assert.Equal(t, 2.0, foods[0].Quantity)
	// non-positive quantities default to 1
	assert.Equal(t, "toast", foods[1].Food)
	assert.Equal(t, 1.0, foods[1].Quantity)
}

func TestExtractServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Extract(context.Background(), "2 eggs")
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		json.NewEncoder(w).Encode(embeddingResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	embedding, err := client.Embed(context.Background(), "what can I cook with beef")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding)
}

func TestEmbedEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		ok       bool
	}{
		{"bare array", `["a","b"]`, `["a","b"]`, true},
		{"array inside prose", "Sure!\n[\"a\"]\nHope that helps.", `["a"]`, true},
		{"no array", "no brackets here", "", false},
		{"brackets but invalid json", "[not, valid", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONArray(tt.response)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.JSONEq(t, tt.want, got)
			}
		})
	}
}
