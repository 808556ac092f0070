package entities

import (
	"github.com/google/uuid"
)

type SnapshotExport struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Mode        string    `json:"mode"` // "fresh", "full"
	Document    string    `json:"document" gorm:"type:text"`
	ArtifactURL string    `json:"artifact_url,omitempty"`
	EntryCount  int       `json:"entry_count"`

	Timestamp
}
