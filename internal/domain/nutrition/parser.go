package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// IngredientParser splits a free-text ingredient line such as "200g chicken"
// or "1 1/2 cups flour" into a FoodQuantity.
type IngredientParser struct {
	pattern *regexp.Regexp
}

// NewIngredientParser creates an ingredient parser.
func NewIngredientParser() *IngredientParser {
	return &IngredientParser{
		// leading numeric segment (ints, decimals, fractions, sums of these),
		// optional unit word, rest is the food name
		pattern: regexp.MustCompile(`^([\d/.\s]+)([a-zA-Z]+)?\s+(.*)$`),
	}
}

// Parse parses a single ingredient line. Lines without a leading number
// yield quantity 1.0 and an empty unit; unparsable numeric tokens each
// contribute 1.0 to the quantity sum rather than failing. Food name and
// unit are always lower-cased.
func (p *IngredientParser) Parse(line string) FoodQuantity {
	m := p.pattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return FoodQuantity{
			FoodName: strings.ToLower(strings.TrimSpace(line)),
			Quantity: 1.0,
			Unit:     "",
		}
	}

	var total float64
	for _, part := range strings.Fields(strings.TrimSpace(m[1])) {
		total += parseNumericToken(part)
	}

	return FoodQuantity{
		FoodName: strings.TrimSpace(strings.ToLower(m[3])),
		Quantity: total,
		Unit:     strings.ToLower(m[2]),
	}
}

// parseNumericToken parses one token of the numeric segment. Fractions like
// "1/2" are evaluated; anything unparsable counts as 1.0.
func parseNumericToken(token string) float64 {
	if strings.Contains(token, "/") {
		parts := strings.SplitN(token, "/", 2)
		num, errN := strconv.ParseFloat(parts[0], 64)
		denom, errD := strconv.ParseFloat(parts[1], 64)
		if errN != nil || errD != nil || denom == 0 {
			return 1.0
		}
		return num / denom
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 1.0
	}
	return v
}
