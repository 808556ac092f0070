package creature

import (
	"context"

	"gorm.io/gorm"

	"Macho-AI-Backend/entities"
)

type (
	MealScanRepository interface {
		CreateMealScan(ctx context.Context, scan *entities.MealScan) error
		UpdateMealScan(ctx context.Context, scan *entities.MealScan) error
		GetMealScanByID(ctx context.Context, id string) (*entities.MealScan, error)
		GetMealScans(ctx context.Context, status string, page, limit int) ([]*entities.MealScan, int64, error)
	}

	mealScanRepository struct {
		db *gorm.DB
	}
)

func NewMealScanRepository(db *gorm.DB) MealScanRepository {
	return &mealScanRepository{db: db}
}

func (r *mealScanRepository) CreateMealScan(ctx context.Context, scan *entities.MealScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *mealScanRepository) UpdateMealScan(ctx context.Context, scan *entities.MealScan) error {
	return r.db.WithContext(ctx).Save(scan).Error
}

func (r *mealScanRepository) GetMealScanByID(ctx context.Context, id string) (*entities.MealScan, error) {
	var scan entities.MealScan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *mealScanRepository) GetMealScans(ctx context.Context, status string, page, limit int) ([]*entities.MealScan, int64, error) {
	var scans []*entities.MealScan
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.MealScan{})
	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&scans).Error; err != nil {
		return nil, 0, err
	}
	return scans, count, nil
}
