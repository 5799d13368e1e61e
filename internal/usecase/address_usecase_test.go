package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type AddressRepoMock struct {
	mock.Mock
}

var _ repo.AddressRepository = (*AddressRepoMock)(nil)

func (m *AddressRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Address, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) Upsert(ctx context.Context, addr model.Address) (model.Address, error) {
	args := m.Called(ctx, addr)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func TestAddressUsecase_GetAddress(t *testing.T) {
	addressRepo := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addressRepo)

	addressRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Address{
		ID:         3,
		UserID:     1,
		Line1:      "1-2-3 Example St",
		City:       "Osaka",
		PostalCode: "530-0001",
	}, nil)

	addr, err := uc.GetAddress(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "1-2-3 Example St", addr.Line1)
}

func TestAddressUsecase_GetAddress_NotSaved(t *testing.T) {
	addressRepo := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addressRepo)

	addressRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Address{}, repo.ErrNotFound)

	_, err := uc.GetAddress(context.Background(), 1)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestAddressUsecase_SaveAddress_Upserts(t *testing.T) {
	addressRepo := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addressRepo)

	addressRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(a model.Address) bool {
		return a.UserID == 1 && a.Line1 == "1-2-3 Example St" && a.Phone == "+81-90-0000-0000"
	})).Return(model.Address{ID: 3, UserID: 1, Line1: "1-2-3 Example St"}, nil).Once()

	addr, err := uc.SaveAddress(context.Background(), 1, usecase.SaveAddressInput{
		Line1:      "1-2-3 Example St",
		City:       "Osaka",
		PostalCode: "530-0001",
		Phone:      "+81-90-0000-0000",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), addr.ID)

	addressRepo.AssertExpectations(t)
}
