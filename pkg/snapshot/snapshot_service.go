package snapshot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/entities"
	"Macho-AI-Backend/internal/utils/mailing"
	"Macho-AI-Backend/internal/utils/storage"
	"Macho-AI-Backend/pkg/creature"
)

type (
	SnapshotService interface {
		Export(ctx context.Context, mode string) ([]byte, domain.SnapshotExportResponse, error)
		Import(ctx context.Context, document string) error
		GetExports(ctx context.Context, page, limit int) ([]domain.SnapshotExportResponse, int64, error)
		Share(ctx context.Context, toEmail string) error
	}

	snapshotService struct {
		store        *creature.Store
		snapshotRepo SnapshotRepository
		s3           storage.AwsS3
	}
)

func NewSnapshotService(store *creature.Store, snapshotRepo SnapshotRepository, s3 storage.AwsS3) SnapshotService {
	return &snapshotService{
		store:        store,
		snapshotRepo: snapshotRepo,
		s3:           s3,
	}
}

// Export produces the snapshot document, archives it, and uploads the
// artifact when object storage is configured. The archive and upload are
// auxiliary: a failure there must not lose the document itself.
func (s *snapshotService) Export(ctx context.Context, mode string) ([]byte, domain.SnapshotExportResponse, error) {
	state := s.store.State()

	doc, err := Encode(state, s.store.Targets(), mode, time.Now())
	if err != nil {
		return nil, domain.SnapshotExportResponse{}, err
	}

	entryCount := len(state.History)
	if mode == ModeFresh {
		entryCount = 0
	}

	export := &entities.SnapshotExport{
		ID:         uuid.New(),
		Mode:       mode,
		Document:   string(doc),
		EntryCount: entryCount,
	}

	if s.s3 != nil {
		key, err := s.s3.UploadBytes(fmt.Sprintf("snapshot-%s", export.ID), doc, "application/json", "snapshots")
		if err != nil {
			log.Printf("error uploading snapshot artifact: %v", err)
		} else {
			export.ArtifactURL = s.s3.GetPublicLinkKey(key)
		}
	}

	if err := s.snapshotRepo.CreateExport(ctx, export); err != nil {
		log.Printf("error archiving snapshot export: %v", err)
	}

	return doc, toExportResponse(export), nil
}

// Import decodes a snapshot document and atomically replaces the live state.
// A corrupt document leaves the current state untouched.
func (s *snapshotService) Import(_ context.Context, document string) error {
	state, _, err := Decode([]byte(document))
	if err != nil {
		return err
	}
	s.store.Restore(state)
	return nil
}

func (s *snapshotService) GetExports(ctx context.Context, page, limit int) ([]domain.SnapshotExportResponse, int64, error) {
	exports, count, err := s.snapshotRepo.GetExports(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.SnapshotExportResponse, 0, len(exports))
	for _, export := range exports {
		responses = append(responses, toExportResponse(export))
	}
	return responses, count, nil
}

// Share mails a fresh-session snapshot so the recipient starts a new game of
// their own; the sender's progress is never included.
func (s *snapshotService) Share(ctx context.Context, toEmail string) error {
	doc, _, err := s.Export(ctx, ModeFresh)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		`<p>マッチョAIトレーナーへの招待が届きました！</p>
<p>下のスナップショットをアプリに読み込むと、新しいゲームが始まります。</p>
<pre>%s</pre>`, string(doc))

	return mailing.SendMail(toEmail, "マッチョAIトレーナーからの招待", body)
}

func toExportResponse(export *entities.SnapshotExport) domain.SnapshotExportResponse {
	return domain.SnapshotExportResponse{
		ID:          export.ID.String(),
		Mode:        export.Mode,
		EntryCount:  export.EntryCount,
		ArtifactURL: export.ArtifactURL,
		CreatedAt:   export.CreatedAt.Format(time.RFC3339),
	}
}
