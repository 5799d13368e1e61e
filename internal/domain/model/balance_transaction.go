package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceTransactionType string

const (
	//残高からの引き落とし（注文の支払い）。
	BalanceTransactionDebit BalanceTransactionType = "debit"
	//残高への入金（チャージ）。
	BalanceTransactionCredit BalanceTransactionType = "credit"
)

// 残高の増減履歴。注文に紐づかないチャージは OrderID が NULL。
type BalanceTransaction struct {
	ID        int64                  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64                  `gorm:"not null;index" json:"user_id"`
	OrderID   *int64                 `gorm:"index" json:"order_id"`
	Amount    decimal.Decimal        `gorm:"type:numeric(12,2);not null" json:"amount"`
	Type      BalanceTransactionType `gorm:"type:varchar(10);not null" json:"type"`
	CreatedAt time.Time              `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
