package observability

import (
	"strconv"

	"github.com/openai/openai-go"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// GPT-4o pricing
	gpt4oInputPrice  = 0.005
	gpt4oOutputPrice = 0.015

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006

	// Gemini image generation, flat cost per generated image
	geminiImageCost = 0.039
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for the vision models
var PricingTable = map[string]ModelPricing{
	"gpt-4o": {
		InputPricePer1K:  gpt4oInputPrice,
		OutputPricePer1K: gpt4oOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
}

// CalculateVisionCost calculates the cost in USD for a vision tagging call
func CalculateVisionCost(model string, usage openai.CompletionUsage) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		// Default to gpt-4o-mini pricing for unknown models
		pricing = PricingTable["gpt-4o-mini"]
	}

	inputCost := (float64(usage.PromptTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.CompletionTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// CalculateImageCost returns the cost in USD for generated images
func CalculateImageCost(imageCount int) float64 {
	if imageCount < 0 {
		return 0
	}
	return float64(imageCount) * geminiImageCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + formatFloat(cost, costFormatPrecision)
}

// formatFloat formats a float with specified precision using strconv
func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
