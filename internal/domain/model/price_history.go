package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 価格変更の履歴。商品更新時にサービス層が明示的に書き込む。
type PriceHistory struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       int64           `gorm:"not null;index" json:"product_id"`
	OldPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"old_price"`
	NewPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"new_price"`
	Reason          string          `gorm:"type:varchar(255)" json:"reason"`
	ChangedByUserID *int64          `gorm:"index" json:"changed_by_user_id"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
