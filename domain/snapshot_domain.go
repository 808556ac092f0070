package domain

import (
	"errors"
)

var (
	MessageSuccessExportSnapshot = "snapshot exported successfully"
	MessageSuccessImportSnapshot = "snapshot imported successfully"
	MessageSuccessListSnapshots  = "snapshot exports retrieved successfully"
	MessageSuccessShareSnapshot  = "fresh game snapshot sent successfully"

	MessageFailedExportSnapshot = "failed to export snapshot"
	MessageFailedImportSnapshot = "failed to import snapshot"
	MessageFailedListSnapshots  = "failed to retrieve snapshot exports"
	MessageFailedShareSnapshot  = "failed to share snapshot"

	ErrSnapshotCorrupt     = errors.New("snapshot document is malformed or incomplete")
	ErrUnknownSnapshotMode = errors.New("unknown snapshot mode")
)

type (
	ImportSnapshotRequest struct {
		Document string `json:"document" validate:"required"`
	}

	ShareSnapshotRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SnapshotExportResponse struct {
		ID          string `json:"id"`
		Mode        string `json:"mode"`
		EntryCount  int    `json:"entry_count"`
		ArtifactURL string `json:"artifact_url,omitempty"`
		CreatedAt   string `json:"created_at"`
	}
)
