package snapshot

import (
	"context"

	"gorm.io/gorm"

	"Macho-AI-Backend/entities"
)

type (
	SnapshotRepository interface {
		CreateExport(ctx context.Context, export *entities.SnapshotExport) error
		GetExports(ctx context.Context, page, limit int) ([]*entities.SnapshotExport, int64, error)
	}

	snapshotRepository struct {
		db *gorm.DB
	}
)

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) CreateExport(ctx context.Context, export *entities.SnapshotExport) error {
	return r.db.WithContext(ctx).Create(export).Error
}

func (r *snapshotRepository) GetExports(ctx context.Context, page, limit int) ([]*entities.SnapshotExport, int64, error) {
	var exports []*entities.SnapshotExport
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.SnapshotExport{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&exports).Error; err != nil {
		return nil, 0, err
	}
	return exports, count, nil
}
