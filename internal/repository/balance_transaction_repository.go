package repository

import (
	"context"

	"app/internal/domain/model"
)

// 残高の入出金台帳。
type BalanceTransactionRepository interface {
	Create(ctx context.Context, tx model.BalanceTransaction) error
	ListByUserID(ctx context.Context, userID int64) ([]model.BalanceTransaction, error)
}
