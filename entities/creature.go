package entities

import (
	"time"
)

// Creature status values derived by the nutrition engine.
const (
	StatusNormal = "NORMAL"
	StatusPumped = "PUMPED"
	StatusSick   = "SICK"
	StatusChubby = "CHUBBY"
)

type DailyMacros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

type LogEntry struct {
	ID        string      `json:"id"`
	FoodName  string      `json:"food_name"`
	Effect    string      `json:"effect"`
	Timestamp time.Time   `json:"timestamp"`
	Macros    DailyMacros `json:"macros"` // per-meal contribution, not the running total
}

// CreatureState is the engine's aggregate. It lives in memory only; the single
// writer is the creature store, and snapshots are the only way it leaves the
// process.
type CreatureState struct {
	Muscle      float64     `json:"muscle"`
	Health      float64     `json:"health"`
	Status      string      `json:"status"`
	IsPoisoned  bool        `json:"is_poisoned"`
	IsEating    bool        `json:"is_eating"`
	IsHappy     bool        `json:"is_happy"`
	DailyTotals DailyMacros `json:"daily_totals"`
	History     []LogEntry  `json:"history"`
}

// NewCreatureState returns the baseline state a fresh session starts from.
func NewCreatureState() CreatureState {
	return CreatureState{
		Muscle:  10,
		Health:  100,
		Status:  StatusNormal,
		History: []LogEntry{},
	}
}

// Clone returns a deep copy so callers can hand state out without sharing the
// history slice with the single writer.
func (s CreatureState) Clone() CreatureState {
	out := s
	out.History = make([]LogEntry, len(s.History))
	copy(out.History, s.History)
	return out
}

func ValidStatus(status string) bool {
	switch status {
	case StatusNormal, StatusPumped, StatusSick, StatusChubby:
		return true
	}
	return false
}
