package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type BalanceTransactionGormRepository struct {
	db *gorm.DB
}

func NewBalanceTransactionGormRepository(db *gorm.DB) *BalanceTransactionGormRepository {
	return &BalanceTransactionGormRepository{db: db}
}

func (r *BalanceTransactionGormRepository) Create(ctx context.Context, tx model.BalanceTransaction) error {
	return r.db.WithContext(ctx).Create(&tx).Error
}

func (r *BalanceTransactionGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.BalanceTransaction, error) {
	var items []model.BalanceTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.BalanceTransaction{}, err
	}
	return items, nil
}
