// Package ollama provides Ollama integration for local AI inference.
// It backs the generative ingredient fallback, the model-based food
// extractor and the query embedder.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/platewise/platewise/internal/infrastructure/config"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxGeneratedIngredients caps the ingredient list synthesized for a dish.
const maxGeneratedIngredients = 7

// arrayPattern matches the first bracketed JSON array literal in a model
// response, prose around it included.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Client talks to a local Ollama instance.
type Client struct {
	baseURL        string
	model          string
	embeddingModel string
	temperature    float64
	client         *http.Client
	logger         *zap.Logger
}

// NewClient creates a new Ollama client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := cfg.Ollama.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", cfg.Ollama.Host),
		zap.String("model", cfg.Ollama.Model),
		zap.Duration("timeout", timeout))

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.Ollama.Host, "/"),
		model:          cfg.Ollama.Model,
		embeddingModel: cfg.Ollama.EmbeddingModel,
		temperature:    cfg.Ollama.Temperature,
		client:         &http.Client{Timeout: timeout},
		logger:         logger.Named("ollama-client"),
	}
}

// Ollama API structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []chatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// GenerateIngredients asks the model for a concise ingredient list for the
// dish. The response is parsed leniently: the first bracketed array wins,
// and any parse failure yields an empty list rather than an error so the
// caller can degrade the dish to a standalone item.
func (c *Client) GenerateIngredients(ctx context.Context, dishName string) ([]string, error) {
	prompt := fmt.Sprintf(`Provide a concise list of common ingredients with quantities for %q.
Only include the most commonly used ingredients for this dish.
Format as a JSON array of strings, e.g. ["200g chicken", "1 onion"].
Keep the list focused on main ingredients (maximum 5-7 items).
For a simple item or beverage, only list its core components.
For example, for "coke" or "cola", just list ["330ml Coca-Cola", "ice cubes"].`, dishName)

	response, err := c.chatCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	array, ok := extractJSONArray(response)
	if !ok {
		c.logger.Debug("no ingredient array in model response", zap.String("dish", dishName))
		return nil, nil
	}

	var ingredients []string
	for _, item := range gjson.Parse(array).Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			ingredients = append(ingredients, s)
		}
		if len(ingredients) == maxGeneratedIngredients {
			break
		}
	}
	return ingredients, nil
}

// Extract pulls food/quantity pairs out of free text using the model.
// Quantities the model reports as strings or fractions still parse through
// gjson's numeric coercion; anything non-positive defaults to 1.
func (c *Client) Extract(ctx context.Context, text string) ([]outbound.ExtractedFood, error) {
	prompt := fmt.Sprintf(`Extract food items and their respective quantities from this text:
%q

Rules:
1. Only extract food items (ignore modifiers like "with", "on", "along with").
2. If the quantity is unclear, assume it is 1.
3. Output a clean JSON format with only "food" and "quantity" fields.
4. Convert all fractions to decimals (e.g., 1/2 to 0.5).
5. Identify dish names (like "pizza", "salad", "mac and cheese") as single food items.

Return in the format:
[
    {"food": "food_name", "quantity": quantity},
    {"food": "food_name", "quantity": quantity}
]`, text)

	response, err := c.chatCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	array, ok := extractJSONArray(response)
	if !ok {
		return nil, nil
	}

	var foods []outbound.ExtractedFood
	for _, item := range gjson.Parse(array).Array() {
		name := strings.ToLower(strings.TrimSpace(item.Get("food").String()))
		if name == "" {
			continue
		}
		qty := item.Get("quantity").Float()
		if qty <= 0 {
			qty = 1.0
		}
		foods = append(foods, outbound.ExtractedFood{Food: name, Quantity: qty})
	}
	return foods, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{Model: c.embeddingModel, Prompt: text}
	body, err := c.post(ctx, "/api/embeddings", reqBody)
	if err != nil {
		return nil, err
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedding response: %w", err)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}
	return parsed.Embedding, nil
}

// chatCompletion sends a single-message chat request and returns the
// model's text response.
func (c *Client) chatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options: map[string]interface{}{
			"temperature": c.temperature,
		},
	}

	body, err := c.post(ctx, "/api/chat", reqBody)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !parsed.Done {
		return "", fmt.Errorf("incomplete response from ollama")
	}
	return parsed.Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// extractJSONArray finds a bracketed array literal in a model response.
// The multiline regex runs first; if it finds nothing the response is
// scanned line by line for a bare array, since some models wrap output in
// prose one line at a time.
func extractJSONArray(response string) (string, bool) {
	if match := arrayPattern.FindString(response); match != "" {
		if gjson.Valid(match) && gjson.Parse(match).IsArray() {
			return match, true
		}
	}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if gjson.Valid(line) && gjson.Parse(line).IsArray() {
				return line, true
			}
		}
	}
	return "", false
}
