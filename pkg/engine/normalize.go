package engine

import (
	"strings"

	"Macho-AI-Backend/domain"
)

const unknownFoodName = "不明な物体"

// Normalize sanitizes a raw analysis result into the numeric domain the
// engine trusts: every macro field non-negative, name never empty. The
// classification flags are passed through untouched.
func Normalize(analysis domain.FoodAnalysis) domain.FoodAnalysis {
	out := analysis
	out.Calories = nonNegative(analysis.Calories)
	out.ProteinG = nonNegative(analysis.ProteinG)
	out.FatG = nonNegative(analysis.FatG)
	out.CarbsG = nonNegative(analysis.CarbsG)
	out.SugarG = nonNegative(analysis.SugarG)
	if strings.TrimSpace(out.Name) == "" {
		out.Name = unknownFoodName
	}
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
