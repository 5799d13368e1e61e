package repository

import (
	"context"

	"app/internal/domain/model"
)

type AddressRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Address, error)
	// 1ユーザー1住所。あれば更新、無ければ作成
	Upsert(ctx context.Context, addr model.Address) (model.Address, error)
}
