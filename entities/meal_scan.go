package entities

import (
	"github.com/google/uuid"
)

type MealScan struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FileName        string    `json:"file_name"`
	MimeType        string    `json:"mime_type"`
	ImageURL        string    `json:"image_url,omitempty"`
	Status          string    `json:"status"` // "Pending", "Processed", "Failed"
	AnalysisResults string    `json:"analysis_results,omitempty" gorm:"type:text"`
	FoodName        string    `json:"food_name,omitempty"`
	IsFood          bool      `json:"is_food"`

	Timestamp
}
