package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// 会員カートを取得し、無ければ作成（1ユーザー1カート）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// ゲストカート（user_id NULL）をトークンで引く
	FindGuestByToken(ctx context.Context, token string) (model.Cart, error)
	CreateGuest(ctx context.Context, token string) (model.Cart, error)

	// チェックアウト用の行ロック（tx内で使う）
	LockByID(ctx context.Context, cartID int64) (model.Cart, error)
}
