package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PaymentMockGormRepository struct {
	db *gorm.DB
}

func NewPaymentMockGormRepository(db *gorm.DB) *PaymentMockGormRepository {
	return &PaymentMockGormRepository{db: db}
}

func (r *PaymentMockGormRepository) Create(ctx context.Context, p model.PaymentMock) (model.PaymentMock, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.PaymentMock{}, err
	}
	return p, nil
}

func (r *PaymentMockGormRepository) FindByID(ctx context.Context, paymentID int64) (model.PaymentMock, error) {
	var p model.PaymentMock
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PaymentMock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PaymentMock{}, err
	}
	return p, nil
}

func (r *PaymentMockGormRepository) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.PaymentMock{}).
		Where("id = ?", paymentID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
