package repository

import (
	"context"

	"app/internal/domain/model"
)

type GarageRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.GarageVehicle, error)
	Create(ctx context.Context, v model.GarageVehicle) (model.GarageVehicle, error)
	// 本人の車だけ削除できる
	DeleteByIDAndUser(ctx context.Context, vehicleID int64, userID int64) error
}
