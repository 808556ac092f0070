package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
)

// DefaultTargets is the recommended daily intake the creature is measured
// against (generic adult in a bulking context).
var DefaultTargets = entities.DailyMacros{
	Calories: 2200,
	Protein:  140,
	Fat:      70,
	Carbs:    250,
}

// Transition folds one analyzed meal into the creature state and returns the
// next state plus the events the player should see.
//
// The rule order is a contract, not an optimization:
//
//  1. non-food short-circuits everything and leaves the state untouched
//  2. poison acquisition (junk food or sugar > 30g), which overrides any
//     detox chance this same meal
//  3. detox check, only when already poisoned and rule 2 did not fire
//  4. status resolution (poisoned preserves the prior status; then the
//     not-enough-data floor, CHUBBY, PUMPED, SICK, NORMAL in that order)
//  5. happiness override for a clean high-protein low-fat meal, which can
//     promote happiness but never demote it
func Transition(prev entities.CreatureState, analysis domain.FoodAnalysis, targets entities.DailyMacros, now time.Time) (entities.CreatureState, []Event) {
	if !analysis.IsFood {
		return prev.Clone(), []Event{{Text: TextNotFood, Kind: EventNeutral}}
	}

	analysis = Normalize(analysis)
	next := prev.Clone()
	var events []Event

	isJunk := analysis.IsUnhealthy || analysis.SugarG > 30
	if isJunk {
		next.IsPoisoned = true
		events = append(events, Event{Text: TextPoisoned, Kind: EventBad})
	} else if next.IsPoisoned {
		if analysis.ProteinG > 15 && analysis.SugarG < 10 {
			next.IsPoisoned = false
			events = append(events, Event{Text: TextDetoxed, Kind: EventGood})
		} else {
			events = append(events, Event{Text: TextNeedsHealthy, Kind: EventBad})
		}
	}

	next.DailyTotals = Accumulate(prev.DailyTotals, analysis)
	d := Derive(next.DailyTotals, targets)
	next.Muscle = d.Muscle
	next.Health = d.Health
	next.IsHappy = false

	switch {
	case next.IsPoisoned:
		// Poison suppresses the happy outcome but does not force a status
		// change; the prior discrete status stands.
		events = append(events, Event{Text: TextStillPoisoned, Kind: EventBad})
	case next.DailyTotals.Calories < 500 && next.DailyTotals.Protein < 20:
		next.Status = entities.StatusNormal
	case d.ExcessCalories > 500 || d.ExcessFat > 40:
		next.Status = entities.StatusChubby
		events = append(events, Event{Text: TextGainingFat, Kind: EventBad})
	case next.DailyTotals.Protein >= targets.Protein*0.4 && d.BodyFatProxy < 20:
		next.Status = entities.StatusPumped
		if !isJunk {
			next.IsHappy = true
			events = append(events, Event{Text: TextGoodBulk, Kind: EventGood})
		}
	case isAlcoholName(analysis.Name):
		next.Status = entities.StatusSick
		events = append(events, Event{Text: TextHangover, Kind: EventBad})
	default:
		next.Status = entities.StatusNormal
	}

	if !next.IsPoisoned && analysis.ProteinG > 10 && analysis.FatG < 20 && !analysis.IsUnhealthy {
		next.IsHappy = true
	}

	next.IsEating = true
	next.History = append(next.History, entities.LogEntry{
		ID:        uuid.NewString(),
		FoodName:  analysis.Name,
		Effect:    analysis.Reasoning,
		Timestamp: now,
		Macros: entities.DailyMacros{
			Calories: analysis.Calories,
			Protein:  analysis.ProteinG,
			Fat:      analysis.FatG,
			Carbs:    analysis.CarbsG,
		},
	})

	return next, events
}

// isAlcoholName matches the analyzed name against the alcohol keyword set.
// Plain substring containment, including the localized terms; a food whose
// name merely contains one of these will match too.
func isAlcoholName(name string) bool {
	return strings.Contains(strings.ToLower(name), "alcohol") ||
		strings.Contains(name, "酒") ||
		strings.Contains(name, "ビール")
}
