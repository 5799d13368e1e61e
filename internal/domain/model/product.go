package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カタログの商品。Priceは現在価格（カート追加時にスナップショットされる）。
type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(200);not null" json:"name"`
	Slug         string          `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	SKU          string          `gorm:"column:sku;type:varchar(100);uniqueIndex;not null" json:"sku"`
	Description  string          `gorm:"type:text" json:"description"`
	Manufacturer string          `gorm:"type:varchar(120)" json:"manufacturer"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	InStock      int64           `gorm:"not null;default:0" json:"in_stock"`
	CategoryID   int64           `gorm:"not null;index" json:"category_id"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
