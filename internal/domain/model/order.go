package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "created"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

type FulfillmentStatus string

const (
	FulfillmentPlaced  FulfillmentStatus = "placed"
	FulfillmentPacked  FulfillmentStatus = "packed"
	FulfillmentShipped FulfillmentStatus = "shipped"
	FulfillmentReady   FulfillmentStatus = "ready"
)

type PaymentMethod string

const (
	PaymentMethodWallet  PaymentMethod = "wallet"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodBalance PaymentMethod = "balance"
	PaymentMethodSBP     PaymentMethod = "sbp"
)

// 注文。明細は作成後に変更しない（ステータス遷移のみ）。
type Order struct {
	ID                int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            int64             `gorm:"not null;index" json:"user_id"`
	Total             decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	Status            OrderStatus       `gorm:"type:varchar(12);not null;default:'created';index" json:"status"`
	PaymentMethod     PaymentMethod     `gorm:"type:varchar(10);not null" json:"payment_method"`
	FulfillmentStatus FulfillmentStatus `gorm:"type:varchar(12);not null;default:'placed'" json:"fulfillment_status"`
	TrackingNumber    string            `gorm:"type:varchar(32)" json:"tracking_number"`
	CreatedAt         time.Time         `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 追跡番号は注文IDから決まる（ZC + ゼロ埋め6桁）。IDが採番された後にしか作れない。
func TrackingNumberFor(orderID int64) string {
	return fmt.Sprintf("ZC%06d", orderID)
}
