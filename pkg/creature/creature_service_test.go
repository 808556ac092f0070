package creature

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
	"Macho-AI-Backend/pkg/engine"
)

type fakeAnalyzer struct {
	results map[string]domain.FoodAnalysis
	err     error
	calls   []string
}

func (f *fakeAnalyzer) AnalyzeFood(_ context.Context, data []byte, _ string) (domain.FoodAnalysis, error) {
	f.calls = append(f.calls, string(data))
	if f.err != nil {
		return domain.FoodAnalysis{}, f.err
	}
	if res, ok := f.results[string(data)]; ok {
		return res, nil
	}
	return domain.FoodAnalysis{}, errors.New("no fixture for input")
}

type fakeScanRepo struct {
	mu    sync.Mutex
	scans map[string]*entities.MealScan
}

func newFakeScanRepo() *fakeScanRepo {
	return &fakeScanRepo{scans: map[string]*entities.MealScan{}}
}

func (f *fakeScanRepo) CreateMealScan(_ context.Context, scan *entities.MealScan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *scan
	f.scans[scan.ID.String()] = &copied
	return nil
}

func (f *fakeScanRepo) UpdateMealScan(_ context.Context, scan *entities.MealScan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *scan
	f.scans[scan.ID.String()] = &copied
	return nil
}

func (f *fakeScanRepo) GetMealScanByID(_ context.Context, id string) (*entities.MealScan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if scan, ok := f.scans[id]; ok {
		return scan, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeScanRepo) GetMealScans(_ context.Context, _ string, _, _ int) ([]*entities.MealScan, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.MealScan, 0, len(f.scans))
	for _, scan := range f.scans {
		out = append(out, scan)
	}
	return out, int64(len(out)), nil
}

func newTestService(analyzer *fakeAnalyzer, repo MealScanRepository) (*creatureService, *Store) {
	store := NewStore(engine.DefaultTargets)
	svc := &creatureService{
		store:     store,
		scanRepo:  repo,
		analyzer:  analyzer,
		itemDelay: time.Millisecond,
	}
	return svc, store
}

func TestFeedAppliesRecordsSerially(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.FoodAnalysis{
		"a": {IsFood: true, Name: "鶏むね肉", Calories: 600, ProteinG: 50, FatG: 5, CarbsG: 40},
		"b": {IsFood: true, Name: "白米", Calories: 250, ProteinG: 4, CarbsG: 55},
	}}
	repo := newFakeScanRepo()
	svc, store := newTestService(analyzer, repo)

	resp, err := svc.Feed(context.Background(), []domain.FeedItem{
		{FileName: "a.jpg", MimeType: "image/jpeg", Data: []byte("a")},
		{FileName: "b.png", MimeType: "image/png", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 item results, got %d", len(resp.Items))
	}
	if len(analyzer.calls) != 2 || analyzer.calls[0] != "a" || analyzer.calls[1] != "b" {
		t.Fatalf("expected serial analysis a then b, got %v", analyzer.calls)
	}

	state := store.State()
	if state.DailyTotals.Calories != 850 || state.DailyTotals.Protein != 54 {
		t.Fatalf("unexpected totals %+v", state.DailyTotals)
	}
	if len(state.History) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(state.History))
	}

	for _, item := range resp.Items {
		scan, err := repo.GetMealScanByID(context.Background(), item.ScanID)
		if err != nil {
			t.Fatalf("scan %s not recorded: %v", item.ScanID, err)
		}
		if scan.Status != ScanStatusProcessed {
			t.Fatalf("expected Processed scan, got %s", scan.Status)
		}
		if scan.AnalysisResults == "" {
			t.Fatalf("expected stored analysis JSON")
		}
	}
}

func TestFeedAnalysisFailureLeavesStateUntouchedAndContinues(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.FoodAnalysis{
		"ok": {IsFood: true, Name: "サラダチキン", Calories: 120, ProteinG: 25},
	}}
	repo := newFakeScanRepo()
	svc, store := newTestService(analyzer, repo)

	resp, err := svc.Feed(context.Background(), []domain.FeedItem{
		{FileName: "broken.jpg", MimeType: "image/jpeg", Data: []byte("broken")},
		{FileName: "ok.jpg", MimeType: "image/jpeg", Data: []byte("ok")},
	})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}

	if resp.Items[0].Applied {
		t.Fatalf("failed analysis must not apply")
	}
	scan, err := repo.GetMealScanByID(context.Background(), resp.Items[0].ScanID)
	if err != nil {
		t.Fatalf("failed scan not recorded: %v", err)
	}
	if scan.Status != ScanStatusFailed {
		t.Fatalf("expected Failed scan, got %s", scan.Status)
	}

	// The bad item did not abort the queue and did not dirty the totals.
	if !resp.Items[1].Applied {
		t.Fatalf("expected second item applied")
	}
	state := store.State()
	if state.DailyTotals.Calories != 120 {
		t.Fatalf("expected only the ok meal accumulated, got %+v", state.DailyTotals)
	}
}

func TestFeedNotFoodShortCircuits(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.FoodAnalysis{
		"rock": {IsFood: false, Name: "岩"},
	}}
	svc, store := newTestService(analyzer, newFakeScanRepo())

	before := store.State()
	resp, err := svc.Feed(context.Background(), []domain.FeedItem{
		{FileName: "rock.jpg", MimeType: "image/jpeg", Data: []byte("rock")},
	})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if resp.Items[0].Applied {
		t.Fatalf("non-food must report not applied")
	}
	if found := hasEventText(resp.Items[0].Events, engine.TextNotFood); !found {
		t.Fatalf("expected not-food event, got %+v", resp.Items[0].Events)
	}

	after := store.State()
	if after.DailyTotals != before.DailyTotals || len(after.History) != len(before.History) {
		t.Fatalf("non-food must leave state unchanged")
	}
}

func TestFeedRejectsUnsupportedInput(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc, store := newTestService(analyzer, newFakeScanRepo())

	resp, err := svc.Feed(context.Background(), []domain.FeedItem{
		{FileName: "notes.txt", MimeType: "text/plain", Data: []byte("x")},
	})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(analyzer.calls) != 0 {
		t.Fatalf("unsupported input must never reach the analyzer")
	}
	if !hasEventText(resp.Items[0].Events, textUnsupported) {
		t.Fatalf("expected unsupported-input event, got %+v", resp.Items[0].Events)
	}
	if len(store.State().History) != 0 {
		t.Fatalf("unsupported input must not mutate state")
	}
}

func TestFeedRequiresFiles(t *testing.T) {
	svc, _ := newTestService(&fakeAnalyzer{}, newFakeScanRepo())
	if _, err := svc.Feed(context.Background(), nil); !errors.Is(err, domain.ErrNoFilesUploaded) {
		t.Fatalf("expected ErrNoFilesUploaded, got %v", err)
	}
}

func TestFeedStopsWhenContextCancelled(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.FoodAnalysis{
		"a": {IsFood: true, Name: "おにぎり", Calories: 180, CarbsG: 40},
		"b": {IsFood: true, Name: "おにぎり", Calories: 180, CarbsG: 40},
	}}
	svc, _ := newTestService(analyzer, newFakeScanRepo())
	svc.itemDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Feed(ctx, []domain.FeedItem{
		{FileName: "a.jpg", MimeType: "image/jpeg", Data: []byte("a")},
		{FileName: "b.jpg", MimeType: "image/jpeg", Data: []byte("b")},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(analyzer.calls) != 1 {
		t.Fatalf("expected only the first item analyzed, got %d", len(analyzer.calls))
	}
}

func TestGetStateExposesVisualBodyFat(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.FoodAnalysis{
		"big": {IsFood: true, Name: "ピザ", Calories: 3200, ProteinG: 40, FatG: 80, CarbsG: 300},
	}}
	svc, _ := newTestService(analyzer, newFakeScanRepo())

	if _, err := svc.Feed(context.Background(), []domain.FeedItem{
		{FileName: "p.jpg", MimeType: "image/jpeg", Data: []byte("big")},
	}); err != nil {
		t.Fatalf("feed: %v", err)
	}

	got := svc.GetState(context.Background())
	// (3200 - 2200) / 50 = 20
	if got.VisualBodyFat != 20 {
		t.Fatalf("expected visual body fat 20, got %.2f", got.VisualBodyFat)
	}
	if got.HistoryCount != 1 {
		t.Fatalf("expected history count 1, got %d", got.HistoryCount)
	}
}

func TestResetReturnsBaseline(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.FoodAnalysis{
		"a": {IsFood: true, Name: "ステーキ", Calories: 700, ProteinG: 60, FatG: 40},
	}}
	svc, _ := newTestService(analyzer, newFakeScanRepo())

	if _, err := svc.Feed(context.Background(), []domain.FeedItem{
		{FileName: "a.jpg", MimeType: "image/jpeg", Data: []byte("a")},
	}); err != nil {
		t.Fatalf("feed: %v", err)
	}

	got := svc.Reset(context.Background())
	if got.Muscle != 10 || got.Health != 100 || got.Status != entities.StatusNormal || got.HistoryCount != 0 {
		t.Fatalf("expected baseline response, got %+v", got)
	}
}

func TestResolveMimeTypeFallsBackToExtension(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{file: "meal.PNG", want: "image/png"},
		{file: "meal.jpeg", want: "image/jpeg"},
		{file: "menu.pdf", want: "application/pdf"},
		{file: "virus.exe", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := resolveMimeType("", tt.file); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func hasEventText(events []domain.CreatureEvent, text string) bool {
	for _, e := range events {
		if e.Text == text {
			return true
		}
	}
	return false
}
