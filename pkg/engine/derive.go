package engine

import (
	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
)

// Derived holds every continuous quantity computed from the running totals.
// All of it is recomputed from scratch on each call; nothing here is carried
// incrementally, which keeps rounding drift out of the model.
type Derived struct {
	Muscle         float64
	ExcessCalories float64
	ExcessFat      float64
	ExcessCarbs    float64
	BodyFatProxy   float64
	Health         float64
	VisualBodyFat  float64
}

// Accumulate adds the record's macros onto the running daily totals.
// Non-food records leave the totals untouched. No upper bound is applied;
// over-target handling belongs to the status rules.
func Accumulate(totals entities.DailyMacros, analysis domain.FoodAnalysis) entities.DailyMacros {
	if !analysis.IsFood {
		return totals
	}
	return entities.DailyMacros{
		Calories: totals.Calories + analysis.Calories,
		Protein:  totals.Protein + analysis.ProteinG,
		Fat:      totals.Fat + analysis.FatG,
		Carbs:    totals.Carbs + analysis.CarbsG,
	}
}

// Derive computes the creature's continuous attributes from totals and
// targets.
//
// BodyFatProxy and VisualBodyFat are deliberately different formulas over the
// same totals: the proxy drives status rules and health, while VisualBodyFat
// only scales the rendered belly. Keep them separate.
func Derive(totals, targets entities.DailyMacros) Derived {
	d := Derived{}

	proteinRatio := totals.Protein / targets.Protein
	d.Muscle = clamp(proteinRatio*100, 0, 100)

	d.ExcessCalories = max0(totals.Calories - targets.Calories)
	d.ExcessFat = max0(totals.Fat - targets.Fat)
	d.ExcessCarbs = max0(totals.Carbs - targets.Carbs)

	d.BodyFatProxy = (d.ExcessCalories/500)*10 + (d.ExcessFat/10)*5 + (d.ExcessCarbs/50)*2

	// Health floors at 50: the creature never dies from diet alone.
	d.Health = 100 - min50(d.BodyFatProxy)

	d.VisualBodyFat = max0((totals.Calories - targets.Calories) / 50)

	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func min50(v float64) float64 {
	if v > 50 {
		return 50
	}
	return v
}
