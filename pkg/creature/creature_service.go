package creature

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
	"Macho-AI-Backend/internal/utils/storage"
	"Macho-AI-Backend/pkg/analysis"
	"Macho-AI-Backend/pkg/engine"
)

// Meal scan states.
const (
	ScanStatusPending   = "Pending"
	ScanStatusProcessed = "Processed"
	ScanStatusFailed    = "Failed"
)

// defaultItemDelay paces the queue between consecutive uploads; the pipeline
// stays strictly serial so the engine never sees two records at once.
const defaultItemDelay = 1 * time.Second

const textAnalysisError = "エラーが発生しました"
const textUnsupported = "画像かPDFのみ！"

type (
	CreatureService interface {
		Feed(ctx context.Context, items []domain.FeedItem) (domain.FeedResponse, error)
		GetState(ctx context.Context) domain.CreatureResponse
		GetHistory(ctx context.Context) []domain.HistoryEntryResponse
		Reset(ctx context.Context) domain.CreatureResponse
		GetMealScans(ctx context.Context, status string, page, limit int) ([]*entities.MealScan, int64, error)
	}

	creatureService struct {
		store     *Store
		scanRepo  MealScanRepository
		analyzer  analysis.AnalysisService
		s3        storage.AwsS3
		itemDelay time.Duration
	}
)

func NewCreatureService(store *Store, scanRepo MealScanRepository, analyzer analysis.AnalysisService, s3 storage.AwsS3) CreatureService {
	return &creatureService{
		store:     store,
		scanRepo:  scanRepo,
		analyzer:  analyzer,
		s3:        s3,
		itemDelay: defaultItemDelay,
	}
}

// Feed processes the uploaded files one at a time: archive, analyze, apply.
// A failure inside one item is caught at the item boundary; the remaining
// queue keeps going and the creature state stays untouched for that item.
func (s *creatureService) Feed(ctx context.Context, items []domain.FeedItem) (domain.FeedResponse, error) {
	if len(items) == 0 {
		return domain.FeedResponse{}, domain.ErrNoFilesUploaded
	}

	resp := domain.FeedResponse{Items: make([]domain.FeedItemResult, 0, len(items))}

	for i, item := range items {
		result := domain.FeedItemResult{FileName: item.FileName, Events: []domain.CreatureEvent{}}

		mimeType := resolveMimeType(item.MimeType, item.FileName)
		if !supportedInput(mimeType) {
			result.Events = append(result.Events, domain.CreatureEvent{Text: textUnsupported, Kind: "neutral"})
			resp.Items = append(resp.Items, result)
			continue
		}

		scan := &entities.MealScan{
			ID:       uuid.New(),
			FileName: item.FileName,
			MimeType: mimeType,
			Status:   ScanStatusPending,
		}
		var objectKey string
		if s.s3 != nil {
			key, err := s.s3.UploadBytes(fmt.Sprintf("meal-%s", scan.ID), item.Data, mimeType, "meals")
			if err != nil {
				log.Printf("error archiving meal image: %v", err)
			} else {
				objectKey = key
				scan.ImageURL = s.s3.GetPublicLinkKey(key)
			}
		}
		if err := s.scanRepo.CreateMealScan(ctx, scan); err != nil {
			log.Printf("error creating meal scan: %v", err)
			if objectKey != "" {
				_ = s.s3.DeleteFile(objectKey)
			}
		} else {
			result.ScanID = scan.ID.String()
		}

		record, err := s.analyzer.AnalyzeFood(ctx, item.Data, mimeType)
		if err != nil {
			scan.Status = ScanStatusFailed
			scan.AnalysisResults = err.Error()
			if err := s.scanRepo.UpdateMealScan(ctx, scan); err != nil {
				log.Printf("error updating meal scan: %v", err)
			}
			result.Events = append(result.Events, domain.CreatureEvent{Text: textAnalysisError, Kind: "bad"})
			resp.Items = append(resp.Items, result)
			if err := s.pause(ctx, i, len(items)); err != nil {
				resp.Creature = s.GetState(ctx)
				return resp, err
			}
			continue
		}

		_, events := s.store.Apply(record, time.Now())

		result.Applied = record.IsFood
		result.FoodName = record.Name
		for _, e := range events {
			result.Events = append(result.Events, domain.CreatureEvent{Text: e.Text, Kind: string(e.Kind)})
		}

		scan.Status = ScanStatusProcessed
		scan.FoodName = record.Name
		scan.IsFood = record.IsFood
		if raw, err := json.Marshal(record); err == nil {
			scan.AnalysisResults = string(raw)
		}
		if err := s.scanRepo.UpdateMealScan(ctx, scan); err != nil {
			log.Printf("error updating meal scan: %v", err)
		}

		resp.Items = append(resp.Items, result)
		if err := s.pause(ctx, i, len(items)); err != nil {
			resp.Creature = s.GetState(ctx)
			return resp, err
		}
	}

	resp.Creature = s.GetState(ctx)
	return resp, nil
}

func (s *creatureService) pause(ctx context.Context, index, total int) error {
	if index >= total-1 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.itemDelay):
		return nil
	}
}

func (s *creatureService) GetState(_ context.Context) domain.CreatureResponse {
	state := s.store.State()
	targets := s.store.Targets()
	derived := engine.Derive(state.DailyTotals, targets)

	return domain.CreatureResponse{
		Muscle:        state.Muscle,
		Health:        state.Health,
		Status:        state.Status,
		IsPoisoned:    state.IsPoisoned,
		IsEating:      state.IsEating,
		IsHappy:       state.IsHappy,
		VisualBodyFat: derived.VisualBodyFat,
		DailyTotals:   state.DailyTotals,
		Targets:       targets,
		HistoryCount:  len(state.History),
	}
}

func (s *creatureService) GetHistory(_ context.Context) []domain.HistoryEntryResponse {
	state := s.store.State()
	entries := make([]domain.HistoryEntryResponse, 0, len(state.History))
	for _, e := range state.History {
		entries = append(entries, domain.HistoryEntryResponse{
			ID:        e.ID,
			FoodName:  e.FoodName,
			Effect:    e.Effect,
			Timestamp: e.Timestamp,
			Macros:    e.Macros,
		})
	}
	return entries
}

func (s *creatureService) Reset(ctx context.Context) domain.CreatureResponse {
	s.store.Reset()
	return s.GetState(ctx)
}

func (s *creatureService) GetMealScans(ctx context.Context, status string, page, limit int) ([]*entities.MealScan, int64, error) {
	return s.scanRepo.GetMealScans(ctx, status, page, limit)
}

func resolveMimeType(mimeType, fileName string) string {
	if mimeType != "" {
		return mimeType
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	}
	return ""
}

func supportedInput(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || mimeType == "application/pdf"
}
