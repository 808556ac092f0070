package creature

import (
	"testing"
	"time"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
	"Macho-AI-Backend/pkg/engine"
)

func testMeal() domain.FoodAnalysis {
	return domain.FoodAnalysis{
		IsFood: true, Name: "鶏むね肉", Calories: 600, ProteinG: 50, FatG: 5, CarbsG: 40, SugarG: 2,
	}
}

func TestStoreApplyUpdatesState(t *testing.T) {
	store := NewStore(engine.DefaultTargets)
	state, events := store.Apply(testMeal(), time.Now())

	if state.DailyTotals.Calories != 600 {
		t.Fatalf("expected 600 kcal accumulated, got %.0f", state.DailyTotals.Calories)
	}
	if !state.IsEating {
		t.Fatalf("expected eating flag after a meal")
	}
	if len(events) == 0 {
		t.Fatalf("expected at least one event")
	}
	if got := store.State(); got.DailyTotals != state.DailyTotals {
		t.Fatalf("store state mismatch: %+v vs %+v", got.DailyTotals, state.DailyTotals)
	}
}

func TestStoreEatingFlagAutoClears(t *testing.T) {
	store := NewStore(engine.DefaultTargets)
	store.eatingDuration = 10 * time.Millisecond

	store.Apply(testMeal(), time.Now())
	if !store.State().IsEating {
		t.Fatalf("expected eating flag set immediately after apply")
	}

	deadline := time.Now().Add(time.Second)
	for store.State().IsEating {
		if time.Now().After(deadline) {
			t.Fatalf("eating flag never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStoreResetDiscardsPendingEatingClear(t *testing.T) {
	store := NewStore(engine.DefaultTargets)
	store.eatingDuration = 20 * time.Millisecond

	store.Apply(testMeal(), time.Now())
	state := store.Reset()

	if state.DailyTotals != (entities.DailyMacros{}) || len(state.History) != 0 {
		t.Fatalf("expected baseline after reset, got %+v", state)
	}

	// The stale timer must not patch the replaced state. Restore a snapshot
	// that is mid-meal and confirm the old timer leaves it alone.
	restored := entities.NewCreatureState()
	restored.IsEating = true
	store.Restore(restored)

	time.Sleep(60 * time.Millisecond)
	if !store.State().IsEating {
		t.Fatalf("stale eating timer cleared a restored state")
	}
}

func TestStoreRestoreReplacesStateWholesale(t *testing.T) {
	store := NewStore(engine.DefaultTargets)
	store.Apply(testMeal(), time.Now())

	snapshot := entities.NewCreatureState()
	snapshot.Muscle = 77
	snapshot.Status = entities.StatusChubby
	snapshot.History = []entities.LogEntry{{ID: "x", FoodName: "ピザ", Timestamp: time.Now()}}
	store.Restore(snapshot)

	got := store.State()
	if got.Muscle != 77 || got.Status != entities.StatusChubby || len(got.History) != 1 {
		t.Fatalf("expected restored state, got %+v", got)
	}

	// The restored copy is independent of the caller's value.
	snapshot.History[0].FoodName = "改ざん"
	if store.State().History[0].FoodName != "ピザ" {
		t.Fatalf("restore must deep-copy the snapshot")
	}
}
