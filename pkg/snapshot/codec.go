package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
)

// Snapshot modes. Fresh encodes a baseline game to gift to someone else; full
// is a verbatim backup of the current state.
const (
	ModeFresh = "fresh"
	ModeFull  = "full"
)

const documentVersion = 1

// The document types use pointer fields so that a missing required field is
// distinguishable from a zero value when decoding.
type (
	document struct {
		Version    *int       `json:"version"`
		ExportedAt *time.Time `json:"exported_at"`
		Mode       *string    `json:"mode"`
		Targets    *macrosDoc `json:"targets"`
		State      *stateDoc  `json:"state"`
	}

	macrosDoc struct {
		Calories *float64 `json:"calories"`
		Protein  *float64 `json:"protein"`
		Fat      *float64 `json:"fat"`
		Carbs    *float64 `json:"carbs"`
	}

	stateDoc struct {
		Muscle      *float64    `json:"muscle"`
		Health      *float64    `json:"health"`
		Status      *string     `json:"status"`
		IsPoisoned  *bool       `json:"is_poisoned"`
		IsEating    *bool       `json:"is_eating"`
		IsHappy     *bool       `json:"is_happy"`
		DailyTotals *macrosDoc  `json:"daily_totals"`
		History     *[]entryDoc `json:"history"`
	}

	entryDoc struct {
		ID        *string    `json:"id"`
		FoodName  *string    `json:"food_name"`
		Effect    string     `json:"effect"`
		Timestamp *time.Time `json:"timestamp"`
		Macros    *macrosDoc `json:"macros"`
	}
)

func ValidMode(mode string) bool {
	return mode == ModeFresh || mode == ModeFull
}

// Encode serializes the creature state as a self-describing JSON document.
// ModeFresh ignores the passed state and encodes the baseline, so a shared
// game always starts from zero no matter when it was exported.
func Encode(state entities.CreatureState, targets entities.DailyMacros, mode string, now time.Time) ([]byte, error) {
	if !ValidMode(mode) {
		return nil, domain.ErrUnknownSnapshotMode
	}
	if mode == ModeFresh {
		state = entities.NewCreatureState()
	}

	version := documentVersion
	doc := document{
		Version:    &version,
		ExportedAt: &now,
		Mode:       &mode,
		Targets:    macrosToDoc(targets),
		State:      stateToDoc(state),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a snapshot document back into a creature state and the
// targets it was exported with. Malformed or incomplete documents fail with
// domain.ErrSnapshotCorrupt; no partial state is ever returned.
func Decode(data []byte) (entities.CreatureState, entities.DailyMacros, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return entities.CreatureState{}, entities.DailyMacros{}, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}

	if doc.Version == nil || doc.Mode == nil || doc.Targets == nil || doc.State == nil {
		return corrupt("missing required document field")
	}
	if *doc.Version != documentVersion {
		return corrupt(fmt.Sprintf("unsupported version %d", *doc.Version))
	}
	if !ValidMode(*doc.Mode) {
		return corrupt(fmt.Sprintf("unknown mode %q", *doc.Mode))
	}

	targets, ok := macrosFromDoc(doc.Targets)
	if !ok {
		return corrupt("incomplete targets")
	}

	s := doc.State
	if s.Muscle == nil || s.Health == nil || s.Status == nil || s.IsPoisoned == nil ||
		s.IsEating == nil || s.IsHappy == nil || s.DailyTotals == nil || s.History == nil {
		return corrupt("missing required state field")
	}
	if !entities.ValidStatus(*s.Status) {
		return corrupt(fmt.Sprintf("unknown status %q", *s.Status))
	}
	if *s.Muscle < 0 || *s.Muscle > 100 {
		return corrupt("muscle out of range")
	}
	if *s.Health < 50 || *s.Health > 100 {
		return corrupt("health out of range")
	}
	totals, ok := macrosFromDoc(s.DailyTotals)
	if !ok {
		return corrupt("incomplete daily totals")
	}

	history := make([]entities.LogEntry, 0, len(*s.History))
	for i, e := range *s.History {
		if e.ID == nil || *e.ID == "" || e.FoodName == nil || e.Timestamp == nil || e.Macros == nil {
			return corrupt(fmt.Sprintf("incomplete history entry %d", i))
		}
		macros, ok := macrosFromDoc(e.Macros)
		if !ok {
			return corrupt(fmt.Sprintf("incomplete macros in history entry %d", i))
		}
		history = append(history, entities.LogEntry{
			ID:        *e.ID,
			FoodName:  *e.FoodName,
			Effect:    e.Effect,
			Timestamp: *e.Timestamp,
			Macros:    macros,
		})
	}

	state := entities.CreatureState{
		Muscle:      *s.Muscle,
		Health:      *s.Health,
		Status:      *s.Status,
		IsPoisoned:  *s.IsPoisoned,
		IsEating:    *s.IsEating,
		IsHappy:     *s.IsHappy,
		DailyTotals: totals,
		History:     history,
	}
	return state, targets, nil
}

func corrupt(reason string) (entities.CreatureState, entities.DailyMacros, error) {
	return entities.CreatureState{}, entities.DailyMacros{}, fmt.Errorf("%w: %s", domain.ErrSnapshotCorrupt, reason)
}

func macrosToDoc(m entities.DailyMacros) *macrosDoc {
	return &macrosDoc{Calories: &m.Calories, Protein: &m.Protein, Fat: &m.Fat, Carbs: &m.Carbs}
}

func macrosFromDoc(d *macrosDoc) (entities.DailyMacros, bool) {
	if d.Calories == nil || d.Protein == nil || d.Fat == nil || d.Carbs == nil {
		return entities.DailyMacros{}, false
	}
	return entities.DailyMacros{Calories: *d.Calories, Protein: *d.Protein, Fat: *d.Fat, Carbs: *d.Carbs}, true
}

func stateToDoc(s entities.CreatureState) *stateDoc {
	entries := make([]entryDoc, 0, len(s.History))
	for i := range s.History {
		e := s.History[i]
		entries = append(entries, entryDoc{
			ID:        &e.ID,
			FoodName:  &e.FoodName,
			Effect:    e.Effect,
			Timestamp: &e.Timestamp,
			Macros:    macrosToDoc(e.Macros),
		})
	}
	return &stateDoc{
		Muscle:      &s.Muscle,
		Health:      &s.Health,
		Status:      &s.Status,
		IsPoisoned:  &s.IsPoisoned,
		IsEating:    &s.IsEating,
		IsHappy:     &s.IsHappy,
		DailyTotals: macrosToDoc(s.DailyTotals),
		History:     &entries,
	}
}
