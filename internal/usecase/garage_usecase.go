package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// GarageUsecase はユーザーのガレージ（所有車）の管理。
type GarageUsecase struct {
	garageRepo repo.GarageRepository
}

func NewGarageUsecase(garageRepo repo.GarageRepository) *GarageUsecase {
	return &GarageUsecase{garageRepo: garageRepo}
}

type AddVehicleInput struct {
	Make  string
	Model string
	Year  *int64
	VIN   string
}

func (u *GarageUsecase) ListVehicles(ctx context.Context, userID int64) ([]model.GarageVehicle, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.garageRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *GarageUsecase) AddVehicle(ctx context.Context, userID int64, in AddVehicleInput) (model.GarageVehicle, error) {
	if userID <= 0 {
		return model.GarageVehicle{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Make) == "" || strings.TrimSpace(in.Model) == "" {
		return model.GarageVehicle{}, NewHTTPError(http.StatusBadRequest, "make and model are required")
	}

	v, err := u.garageRepo.Create(ctx, model.GarageVehicle{
		UserID: userID,
		Make:   in.Make,
		Model:  in.Model,
		Year:   in.Year,
		VIN:    in.VIN,
	})
	if err != nil {
		return model.GarageVehicle{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return v, nil
}

func (u *GarageUsecase) DeleteVehicle(ctx context.Context, userID int64, vehicleID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if vehicleID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.garageRepo.DeleteByIDAndUser(ctx, vehicleID, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
