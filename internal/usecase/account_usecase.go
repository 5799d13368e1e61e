package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// AccountUsecase は残高の照会・チャージと入出金台帳。
type AccountUsecase struct {
	userRepo repo.UserRepository
	tx       repo.TransactionManager
}

func NewAccountUsecase(userRepo repo.UserRepository, tx repo.TransactionManager) *AccountUsecase {
	return &AccountUsecase{userRepo: userRepo, tx: tx}
}

type BalanceOutput struct {
	Balance decimal.Decimal `json:"balance"`
}

type TopUpInput struct {
	Amount decimal.Decimal
}

func (u *AccountUsecase) GetBalance(ctx context.Context, userID int64) (BalanceOutput, error) {
	if userID <= 0 {
		return BalanceOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return BalanceOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return BalanceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BalanceOutput{Balance: user.Balance}, nil
}

// TopUp は残高チャージ。外部の決済レールは通さず加算と台帳記録だけを行う。
func (u *AccountUsecase) TopUp(ctx context.Context, userID int64, in TopUpInput) (BalanceOutput, error) {
	if userID <= 0 {
		return BalanceOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !in.Amount.IsPositive() {
		return BalanceOutput{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	amount := in.Amount.Round(2)

	var out BalanceOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().AddBalance(ctx, userID, amount); err != nil {
			if err == repo.ErrUserNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//台帳に入金を1行
		if err := r.BalanceTransactions().Create(ctx, model.BalanceTransaction{
			UserID: userID,
			Amount: amount,
			Type:   model.BalanceTransactionCredit,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		user, err := r.Users().FindByID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out.Balance = user.Balance
		return nil
	})

	if err != nil {
		return BalanceOutput{}, err
	}
	return out, nil
}

func (u *AccountUsecase) ListTransactions(ctx context.Context, userID int64) ([]model.BalanceTransaction, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var items []model.BalanceTransaction

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		list, err := r.BalanceTransactions().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items = list
		return nil
	})

	if err != nil {
		return nil, err
	}
	return items, nil
}
