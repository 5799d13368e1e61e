package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type GarageGormRepository struct {
	db *gorm.DB
}

func NewGarageGormRepository(db *gorm.DB) *GarageGormRepository {
	return &GarageGormRepository{db: db}
}

func (r *GarageGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.GarageVehicle, error) {
	var items []model.GarageVehicle
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.GarageVehicle{}, err
	}
	return items, nil
}

func (r *GarageGormRepository) Create(ctx context.Context, v model.GarageVehicle) (model.GarageVehicle, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return model.GarageVehicle{}, err
	}
	return v, nil
}

// 本人の車だけ削除できる
func (r *GarageGormRepository) DeleteByIDAndUser(ctx context.Context, vehicleID int64, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", vehicleID, userID).
		Delete(&model.GarageVehicle{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
