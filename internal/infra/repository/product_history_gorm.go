package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type ProductHistoryGormRepository struct {
	db *gorm.DB
}

func NewProductHistoryGormRepository(db *gorm.DB) *ProductHistoryGormRepository {
	return &ProductHistoryGormRepository{db: db}
}

func (r *ProductHistoryGormRepository) CreatePriceHistory(ctx context.Context, h model.PriceHistory) error {
	return r.db.WithContext(ctx).Create(&h).Error
}

func (r *ProductHistoryGormRepository) CreateChangeLog(ctx context.Context, l model.ProductChangeLog) error {
	return r.db.WithContext(ctx).Create(&l).Error
}

func (r *ProductHistoryGormRepository) ListPriceHistory(ctx context.Context, productID int64) ([]model.PriceHistory, error) {
	var items []model.PriceHistory
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.PriceHistory{}, err
	}
	return items, nil
}

func (r *ProductHistoryGormRepository) ListChangeLogs(ctx context.Context, productID int64) ([]model.ProductChangeLog, error) {
	var items []model.ProductChangeLog
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.ProductChangeLog{}, err
	}
	return items, nil
}
