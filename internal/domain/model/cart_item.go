package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。(cart_id, product_id) で1行。
// PriceAtAddは追加時点の価格スナップショット（その後の価格改定の影響を受けない）。
type CartItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     int64           `gorm:"not null;uniqueIndex:uniq_cart_product" json:"cart_id"`
	ProductID  int64           `gorm:"not null;uniqueIndex:uniq_cart_product" json:"product_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	PriceAtAdd decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price_at_add" json:"price_at_add"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 明細の小計（2桁に丸める）。
func (i CartItem) Subtotal() decimal.Decimal {
	return i.PriceAtAdd.Mul(decimal.NewFromInt(i.Quantity)).Round(2)
}
