package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_EstimateCost(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		name     string
		provider string
		model    string
		in, out  int
		want     float64
	}{
		{"exact model", "anthropic", "claude-opus-4-5", 1_000_000, 1_000_000, 30.0},
		{"dated model id", "Anthropic", "claude-haiku-4-5-20251001", 1_000_000, 0, 1.0},
		{"longest prefix", "gemini", "gemini-2.5-flash-lite-preview", 1_000_000, 0, 0.10},
		{"unknown provider", "openai", "gpt-4o", 1000, 1000, 0},
		{"unknown model", "anthropic", "claude-2", 1000, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.EstimateCost(tt.provider, tt.model, tt.in, tt.out), 1e-9)
		})
	}
}

func TestCalculator_AddPricingIsLocal(t *testing.T) {
	a := NewCalculator()
	b := NewCalculator()

	a.AddPricing("custom", "m1", PricingTable{InputPricePerMillion: 1, OutputPricePerMillion: 2})

	assert.InDelta(t, 3.0, a.EstimateCost("custom", "m1", 1_000_000, 1_000_000), 1e-9)
	assert.Zero(t, b.EstimateCost("custom", "m1", 1_000_000, 1_000_000))
}
