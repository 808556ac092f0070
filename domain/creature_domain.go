package domain

import (
	"errors"
	"time"

	"Macho-AI-Backend/entities"
)

var (
	MessageSuccessFeedCreature  = "meals processed successfully"
	MessageSuccessGetCreature   = "creature state retrieved successfully"
	MessageSuccessGetHistory    = "feeding history retrieved successfully"
	MessageSuccessResetCreature = "creature reset to baseline"

	MessageFailedFeedCreature = "failed to feed creature"
	MessageFailedGetCreature  = "failed to retrieve creature state"
	MessageFailedGetHistory   = "failed to retrieve feeding history"

	ErrNoFilesUploaded  = errors.New("no files uploaded")
	ErrUnsupportedInput = errors.New("only images and PDF documents are supported")
)

type (
	// FeedItem is one uploaded meal file, already read off the wire.
	FeedItem struct {
		FileName string
		MimeType string
		Data     []byte
	}

	// CreatureEvent mirrors the floating toasts of the original UI. Kind is
	// one of "good", "bad", "neutral".
	CreatureEvent struct {
		Text string `json:"text"`
		Kind string `json:"kind"`
	}

	CreatureResponse struct {
		Muscle        float64              `json:"muscle"`
		Health        float64              `json:"health"`
		Status        string               `json:"status"`
		IsPoisoned    bool                 `json:"is_poisoned"`
		IsEating      bool                 `json:"is_eating"`
		IsHappy       bool                 `json:"is_happy"`
		VisualBodyFat float64              `json:"visual_body_fat"`
		DailyTotals   entities.DailyMacros `json:"daily_totals"`
		Targets       entities.DailyMacros `json:"targets"`
		HistoryCount  int                  `json:"history_count"`
	}

	FeedItemResult struct {
		FileName string          `json:"file_name"`
		ScanID   string          `json:"scan_id,omitempty"`
		Applied  bool            `json:"applied"`
		FoodName string          `json:"food_name,omitempty"`
		Events   []CreatureEvent `json:"events"`
	}

	FeedResponse struct {
		Items    []FeedItemResult `json:"items"`
		Creature CreatureResponse `json:"creature"`
	}

	HistoryEntryResponse struct {
		ID        string               `json:"id"`
		FoodName  string               `json:"food_name"`
		Effect    string               `json:"effect"`
		Timestamp time.Time            `json:"timestamp"`
		Macros    entities.DailyMacros `json:"macros"`
	}
)
