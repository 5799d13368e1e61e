package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: db}
}

func (r *AddressGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

// 1ユーザー1住所。あれば更新、無ければ作成
func (r *AddressGormRepository) Upsert(ctx context.Context, addr model.Address) (model.Address, error) {
	var saved model.Address

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Address
		findErr := tx.Where("user_id = ?", addr.UserID).First(&existing).Error

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			if err := tx.Create(&addr).Error; err != nil {
				return err
			}
			saved = addr
			return nil
		}
		if findErr != nil {
			return findErr
		}

		res := tx.Model(&model.Address{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
			"line1":       addr.Line1,
			"line2":       addr.Line2,
			"city":        addr.City,
			"region":      addr.Region,
			"postal_code": addr.PostalCode,
			"phone":       addr.Phone,
		})
		if res.Error != nil {
			return res.Error
		}

		return tx.Where("id = ?", existing.ID).First(&saved).Error
	})

	if err != nil {
		return model.Address{}, err
	}
	return saved, nil
}
