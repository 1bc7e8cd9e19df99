package ai

import (
	"strings"
	"sync"
)

type PricingTable struct {
	InputPricePerMillion  float64
	OutputPricePerMillion float64
}

type ProviderPricing map[string]map[string]PricingTable

// https://www.anthropic.com/pricing, https://ai.google.dev/gemini-api/docs/pricing
var defaultPricing = ProviderPricing{
	"anthropic": {
		"claude-opus-4-5":   {InputPricePerMillion: 5.00, OutputPricePerMillion: 25.00},
		"claude-sonnet-4-5": {InputPricePerMillion: 3.00, OutputPricePerMillion: 15.00},
		"claude-haiku-4-5":  {InputPricePerMillion: 1.00, OutputPricePerMillion: 5.00},
	},
	"gemini": {
		"gemini-2.5-pro":        {InputPricePerMillion: 1.25, OutputPricePerMillion: 10.00},
		"gemini-2.5-flash":      {InputPricePerMillion: 0.30, OutputPricePerMillion: 2.50},
		"gemini-2.5-flash-lite": {InputPricePerMillion: 0.10, OutputPricePerMillion: 0.40},
	},
}

// Calculator prices token usage. Each instance owns its table.
type Calculator struct {
	mu      sync.RWMutex
	pricing ProviderPricing
}

func NewCalculator() *Calculator {
	pricing := make(ProviderPricing, len(defaultPricing))
	for provider, models := range defaultPricing {
		pricing[provider] = make(map[string]PricingTable, len(models))
		for model, table := range models {
			pricing[provider][model] = table
		}
	}
	return &Calculator{pricing: pricing}
}

// EstimateCost returns the USD cost of a call, 0 when the model is unknown.
// Dated model ids (claude-opus-4-5-20251101) match their base entry.
func (c *Calculator) EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	table, ok := c.lookup(provider, model)
	if !ok {
		return 0
	}
	inputCost := (float64(inputTokens) / 1_000_000) * table.InputPricePerMillion
	outputCost := (float64(outputTokens) / 1_000_000) * table.OutputPricePerMillion
	return inputCost + outputCost
}

// AddPricing registers or replaces the price of one model.
func (c *Calculator) AddPricing(provider, model string, table PricingTable) {
	provider = strings.ToLower(provider)
	model = strings.ToLower(model)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.pricing[provider]; !exists {
		c.pricing[provider] = make(map[string]PricingTable)
	}
	c.pricing[provider][model] = table
}

func (c *Calculator) lookup(provider, model string) (PricingTable, bool) {
	provider = strings.ToLower(provider)
	model = strings.ToLower(model)

	c.mu.RLock()
	defer c.mu.RUnlock()

	providerPricing, exists := c.pricing[provider]
	if !exists {
		return PricingTable{}, false
	}
	if table, exists := providerPricing[model]; exists {
		return table, true
	}

	// Longest prefix wins so "gemini-2.5-flash-lite-x" is not priced as flash.
	var best string
	for name := range providerPricing {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return PricingTable{}, false
	}
	return providerPricing[best], true
}
