package snapshot

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
	"Macho-AI-Backend/pkg/creature"
	"Macho-AI-Backend/pkg/engine"
)

type fakeSnapshotRepo struct {
	mu      sync.Mutex
	exports []*entities.SnapshotExport
}

func (f *fakeSnapshotRepo) CreateExport(_ context.Context, export *entities.SnapshotExport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *export
	f.exports = append(f.exports, &copied)
	return nil
}

func (f *fakeSnapshotRepo) GetExports(_ context.Context, _, _ int) ([]*entities.SnapshotExport, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exports, int64(len(f.exports)), nil
}

func feedOnce(t *testing.T, store *creature.Store) {
	t.Helper()
	store.Apply(domain.FoodAnalysis{
		IsFood: true, Name: "鶏むね肉", Calories: 600, ProteinG: 50, FatG: 5, CarbsG: 40,
	}, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestExportFullRoundTripsLiveState(t *testing.T) {
	store := creature.NewStore(engine.DefaultTargets)
	feedOnce(t, store)
	repo := &fakeSnapshotRepo{}
	svc := NewSnapshotService(store, repo, nil)

	doc, meta, err := svc.Export(context.Background(), ModeFull)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if meta.Mode != ModeFull || meta.EntryCount != 1 {
		t.Fatalf("unexpected export metadata %+v", meta)
	}
	if len(repo.exports) != 1 {
		t.Fatalf("expected one archived export, got %d", len(repo.exports))
	}

	decoded, targets, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if targets != engine.DefaultTargets {
		t.Fatalf("expected targets echoed, got %+v", targets)
	}
	if !reflect.DeepEqual(decoded, store.State()) {
		t.Fatalf("exported document must match live state")
	}
}

func TestExportFreshAlwaysEncodesBaseline(t *testing.T) {
	store := creature.NewStore(engine.DefaultTargets)
	feedOnce(t, store)
	svc := NewSnapshotService(store, &fakeSnapshotRepo{}, nil)

	doc, meta, err := svc.Export(context.Background(), ModeFresh)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if meta.EntryCount != 0 {
		t.Fatalf("fresh export must report zero entries, got %d", meta.EntryCount)
	}
	decoded, _, err := Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, entities.NewCreatureState()) {
		t.Fatalf("fresh export must decode to baseline, got %+v", decoded)
	}
}

func TestImportReplacesLiveState(t *testing.T) {
	source := creature.NewStore(engine.DefaultTargets)
	feedOnce(t, source)
	doc, _, err := NewSnapshotService(source, &fakeSnapshotRepo{}, nil).Export(context.Background(), ModeFull)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	target := creature.NewStore(engine.DefaultTargets)
	svc := NewSnapshotService(target, &fakeSnapshotRepo{}, nil)
	if err := svc.Import(context.Background(), string(doc)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(target.State(), source.State()) {
		t.Fatalf("imported state must equal exported state")
	}
}

func TestImportCorruptDocumentLeavesStateUntouched(t *testing.T) {
	store := creature.NewStore(engine.DefaultTargets)
	feedOnce(t, store)
	before := store.State()

	svc := NewSnapshotService(store, &fakeSnapshotRepo{}, nil)
	err := svc.Import(context.Background(), `{"version":1}`)
	if !errors.Is(err, domain.ErrSnapshotCorrupt) {
		t.Fatalf("expected ErrSnapshotCorrupt, got %v", err)
	}
	if !reflect.DeepEqual(store.State(), before) {
		t.Fatalf("corrupt import must not touch the live state")
	}
}
