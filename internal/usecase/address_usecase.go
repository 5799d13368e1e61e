package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AddressUsecase は配送先住所（1ユーザー1件）のCRUD。
type AddressUsecase struct {
	addressRepo repo.AddressRepository
}

func NewAddressUsecase(addressRepo repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo}
}

type SaveAddressInput struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Phone      string
}

func (u *AddressUsecase) GetAddress(ctx context.Context, userID int64) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	addr, err := u.addressRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return addr, nil
}

func (u *AddressUsecase) SaveAddress(ctx context.Context, userID int64, in SaveAddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	addr, err := u.addressRepo.Upsert(ctx, model.Address{
		UserID:     userID,
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		Region:     in.Region,
		PostalCode: in.PostalCode,
		Phone:      in.Phone,
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return addr, nil
}
