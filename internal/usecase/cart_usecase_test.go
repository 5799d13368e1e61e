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

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock) {
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	return uc, cartRepo, cartItemRepo, productRepo
}

func memberIdentity(userID int64) usecase.CartIdentity {
	return usecase.CartIdentity{UserID: userID}
}

// =====================
// GetCart
// =====================

func TestCartUsecase_GetCart_EmptyCartTotalIsZero(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, _ := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(ctx, memberIdentity(userID))
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, "0.00", out.Total.StringFixed(2))
	//会員カートにはトークンを返さない
	assert.Empty(t, out.CartToken)
}

func TestCartUsecase_GetCart_GuestGetsTokenBack(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, _ := newCartUsecase()

	//無効なトークンは新しいゲストカートを発行する
	cartRepo.On("FindGuestByToken", mock.Anything, "bogus").Return(model.Cart{}, repo.ErrNotFound)
	cartRepo.On("CreateGuest", mock.Anything, mock.AnythingOfType("string")).
		Return(model.Cart{ID: 20, UserID: nil, Token: "fresh-token"}, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(20)).Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(ctx, usecase.CartIdentity{Token: "bogus"})
	assert.NoError(t, err)
	assert.Equal(t, "fresh-token", out.CartToken)
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_SnapshotsCurrentPrice(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, productRepo := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{ID: 5, Name: "Oil filter", Price: dec("4213.00")}, nil)
	cartItemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(10), int64(5), int64(2), decEq(dec("4213.00"))).
		Return(nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 5, Quantity: 2, PriceAtAdd: dec("4213.00")},
	}, nil)

	out, err := uc.AddToCart(ctx, memberIdentity(userID), usecase.AddCartInput{ProductID: 5, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, "8426.00", out.Total.StringFixed(2))

	cartItemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_QuantityClampedToOne(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, productRepo := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{ID: 5, Price: dec("100.50")}, nil)
	//0以下でも最低1で追加される
	cartItemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(10), int64(5), int64(1), decEq(dec("100.50"))).
		Return(nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 5, Quantity: 1, PriceAtAdd: dec("100.50")},
	}, nil)

	_, err := uc.AddToCart(ctx, memberIdentity(userID), usecase.AddCartInput{ProductID: 5, Quantity: -3})
	assert.NoError(t, err)

	cartItemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, productRepo := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	productRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, memberIdentity(userID), usecase.AddCartInput{ProductID: 999, Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// 同一商品の再追加でも価格は初回スナップショットのまま
// （加算のUpsertに現在価格を渡すが、既存行のprice_at_addには触れない）
func TestCartUsecase_AddToCart_DuplicateKeepsSnapshotPrice(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, productRepo := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	//値上げ後の現在価格
	productRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{ID: 5, Price: dec("5000.00")}, nil)
	cartItemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(10), int64(5), int64(1), decEq(dec("5000.00"))).
		Return(nil)
	//既存行は追加時点の価格のまま
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 5, Quantity: 3, PriceAtAdd: dec("4213.00")},
	}, nil)

	out, err := uc.AddToCart(ctx, memberIdentity(userID), usecase.AddCartInput{ProductID: 5, Quantity: 1})
	assert.NoError(t, err)
	assert.Equal(t, "12639.00", out.Total.StringFixed(2))
	assert.Equal(t, "4213.00", out.Items[0].Price.StringFixed(2))
}

// =====================
// Update / Delete
// =====================

func TestCartUsecase_UpdateCartItem_NotOwned(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, _ := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("IsOwnedByCart", mock.Anything, int64(77), int64(10)).Return(false, nil)

	_, err := uc.UpdateCartItem(ctx, memberIdentity(userID), 77, usecase.UpdateCartItemInput{Quantity: 2})
	assertHTTPStatus(t, err, http.StatusNotFound)

	cartItemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_DeleteCartItems_BatchIgnoresForeignIDs(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, _ := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	//リポジトリ側がカート所属分だけ消す
	cartItemRepo.On("DeleteBatch", mock.Anything, int64(10), []int64{1, 2, 999}).Return(nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.DeleteCartItems(ctx, memberIdentity(userID), []int64{1, 2, 999})
	assert.NoError(t, err)
	assert.Equal(t, "0.00", out.Total.StringFixed(2))

	cartItemRepo.AssertExpectations(t)
}

// =====================
// 合計の量子化
// =====================

func TestCartUsecase_Total_MixedItems(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, cartItemRepo, productRepo := newCartUsecase()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: &userID}

	cartRepo.On("GetOrCreateByUserID", mock.Anything, userID).Return(cart, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 5, Quantity: 2, PriceAtAdd: dec("4213.00")},
		{ID: 2, CartID: 10, ProductID: 6, Quantity: 1, PriceAtAdd: dec("100.50")},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Name: "Brake pads"}, nil)
	productRepo.On("FindByID", mock.Anything, int64(6)).Return(model.Product{ID: 6, Name: "Wiper blade"}, nil)

	out, err := uc.GetCart(ctx, memberIdentity(userID))
	assert.NoError(t, err)
	assert.Equal(t, "8526.50", out.Total.StringFixed(2))
	assert.Equal(t, "8426.00", out.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "100.50", out.Items[1].Subtotal.StringFixed(2))
}
