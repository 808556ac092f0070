package domain

import (
	"errors"
)

var (
	ErrAnalysisFailed    = errors.New("food analysis failed")
	ErrMissingGeminiKey  = errors.New("gemini api key not configured")
	ErrEmptyAnalysisBody = errors.New("gemini returned an empty response")
)

// FoodAnalysis is the nutrition record produced by the vision service for a
// single meal. Numeric fields are estimates and must be non-negative once
// normalized; the engine trusts them after engine.Normalize.
type FoodAnalysis struct {
	IsFood      bool    `json:"isFood"`
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	FatG        float64 `json:"fat_g"`
	CarbsG      float64 `json:"carbs_g"`
	SugarG      float64 `json:"sugar_g"`
	IsUnhealthy bool    `json:"isUnhealthy"`
	Reasoning   string  `json:"reasoning"`
}
