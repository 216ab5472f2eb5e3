// Package usda provides the USDA FoodData Central lookup used as the
// external nutrition source. Results are best-effort per-100g figures; a
// miss or failure simply moves the resolver to its next tier.
package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/platewise/platewise/internal/infrastructure/config"
	"github.com/platewise/platewise/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements the NutritionLookup interface against FoodData Central.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new FoodData Central client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := cfg.USDA.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.USDA.BaseURL, "/"),
		apiKey:  cfg.USDA.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("usda-client"),
	}
}

type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Search queries FoodData Central for the best single match. It returns
// (nil, nil) when no food matches and an error only for transport or
// protocol failures; callers treat both outcomes as a miss.
func (c *Client) Search(ctx context.Context, foodName string) (*outbound.FoodNutrition, error) {
	params := url.Values{}
	params.Set("query", foodName)
	params.Set("api_key", c.apiKey)
	params.Add("dataType", "Foundation")
	params.Add("dataType", "SR Legacy")
	params.Set("pageSize", "1")

	endpoint := c.baseURL + "/foods/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("food search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(parsed.Foods) == 0 {
		c.logger.Debug("no match in food database", zap.String("food", foodName))
		return nil, nil
	}

	food := parsed.Foods[0]
	result := &outbound.FoodNutrition{Food: strings.ToLower(food.Description)}
	for _, nutrient := range food.FoodNutrients {
		switch nutrient.NutrientName {
		case "Energy":
			result.Calories = nutrient.Value
		case "Protein":
			result.Protein = nutrient.Value
		case "Total lipid (fat)":
			result.Fat = nutrient.Value
		case "Carbohydrate, by difference":
			result.Carbs = nutrient.Value
		}
	}
	return result, nil
}
