package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// PaymentMockUsecase はモック決済。シナリオ（success/fail/pending）が
// 確定時の結果を決め、pendingはwebhookで後から確定する。
type PaymentMockUsecase struct {
	tx repo.TransactionManager
}

func NewPaymentMockUsecase(tx repo.TransactionManager) *PaymentMockUsecase {
	return &PaymentMockUsecase{tx: tx}
}

type CreatePaymentInput struct {
	OrderID  int64
	Scenario string
}

type CreatePaymentOutput struct {
	PaymentID    int64  `json:"payment_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type PaymentStatusOutput struct {
	Status string `json:"status"`
}

func parseScenario(s string) (model.PaymentScenario, bool) {
	switch model.PaymentScenario(s) {
	case model.PaymentScenarioSuccess:
		return model.PaymentScenarioSuccess, true
	case model.PaymentScenarioFail:
		return model.PaymentScenarioFail, true
	case model.PaymentScenarioPending:
		return model.PaymentScenarioPending, true
	case "":
		//省略時はsuccess
		return model.PaymentScenarioSuccess, true
	}
	return "", false
}

// CreatePayment は注文に対する決済試行を作る。
func (u *PaymentMockUsecase) CreatePayment(ctx context.Context, userID int64, in CreatePaymentInput) (CreatePaymentOutput, error) {
	if userID <= 0 {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}

	scenario, ok := parseScenario(in.Scenario)
	if !ok {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid scenario")
	}

	var out CreatePaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人の注文には決済を作れない
		if order.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		p, err := r.Payments().Create(ctx, model.PaymentMock{
			OrderID:      in.OrderID,
			Scenario:     scenario,
			Status:       model.PaymentStatusCreated,
			ClientSecret: uuid.NewString(),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = CreatePaymentOutput{
			PaymentID:    p.ID,
			ClientSecret: p.ClientSecret,
			Status:       string(p.Status),
		}
		return nil
	})

	if err != nil {
		return CreatePaymentOutput{}, err
	}
	return out, nil
}

// ConfirmPayment はシナリオどおりに決済を確定する。
// success→succeeded/注文paid、fail→failed/注文failed、
// pending→processing（注文は未確定のままwebhook待ち）。
func (u *PaymentMockUsecase) ConfirmPayment(ctx context.Context, userID int64, paymentID int64) (PaymentStatusOutput, error) {
	if userID <= 0 {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID <= 0 {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_id")
	}

	var out PaymentStatusOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		switch p.Scenario {
		case model.PaymentScenarioSuccess:
			if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusSucceeded); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Orders().UpdateStatus(ctx, p.OrderID, model.OrderStatusPaid); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Status = string(model.PaymentStatusSucceeded)

		case model.PaymentScenarioFail:
			if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusFailed); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Orders().UpdateStatus(ctx, p.OrderID, model.OrderStatusFailed); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Status = string(model.PaymentStatusFailed)

		default:
			//pending：決済だけprocessingにして注文は触らない
			if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusProcessing); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Status = string(model.PaymentStatusProcessing)
		}

		return nil
	})

	if err != nil {
		return PaymentStatusOutput{}, err
	}
	return out, nil
}

type MockWebhookInput struct {
	PaymentID int64
	Result    string
}

// HandleWebhook は外部からの確定通知。
// processing以外の決済への通知は競合として拒否し、何も変更しない。
func (u *PaymentMockUsecase) HandleWebhook(ctx context.Context, in MockWebhookInput) (PaymentStatusOutput, error) {
	if in.PaymentID <= 0 {
		return PaymentStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_id")
	}

	var out PaymentStatusOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, in.PaymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if p.Status != model.PaymentStatusProcessing {
			return NewHTTPError(http.StatusConflict, "payment is not processing")
		}

		if in.Result == "succeeded" {
			if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusSucceeded); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Orders().UpdateStatus(ctx, p.OrderID, model.OrderStatusPaid); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Status = string(model.PaymentStatusSucceeded)
			return nil
		}

		//succeeded以外は全部失敗扱い
		if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusFailed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, p.OrderID, model.OrderStatusFailed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.Status = string(model.PaymentStatusFailed)
		return nil
	})

	if err != nil {
		return PaymentStatusOutput{}, err
	}
	return out, nil
}
