package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//最終ログインなどの更新
	Update(ctx context.Context, user *model.User) error

	// 残高チャージ（加算のみ）
	AddBalance(ctx context.Context, userID int64, amount decimal.Decimal) error

	// 残高が足りるときだけ引き落とす。足りなければfalse
	DebitBalanceIfEnough(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error)
}
