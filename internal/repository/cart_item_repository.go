package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	// 同一商品は数量加算。price_at_addは新規行にだけ書く
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, priceAtAdd decimal.Decimal) error

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error

	// 指定カートに属するidだけ削除（属さないidは黙って無視）
	DeleteBatch(ctx context.Context, cartID int64, itemIDs []int64) error

	// チェックアウト成功時のクリア
	DeleteAllByCartID(ctx context.Context, cartID int64) error

	IsOwnedByCart(ctx context.Context, cartItemID int64, cartID int64) (bool, error)
}
