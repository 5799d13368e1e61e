package repository

import (
	"app/internal/domain/model"
	"context"
)

// 価格履歴・変更ログの保存と取得。
// フックではなくサービス層が差分を計算して明示的に書き込む。
type ProductHistoryRepository interface {
	CreatePriceHistory(ctx context.Context, h model.PriceHistory) error
	CreateChangeLog(ctx context.Context, l model.ProductChangeLog) error

	ListPriceHistory(ctx context.Context, productID int64) ([]model.PriceHistory, error)
	ListChangeLogs(ctx context.Context, productID int64) ([]model.ProductChangeLog, error)
}
