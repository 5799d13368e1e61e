package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// プロバイダのイベント名と注文ステータスの対応
const (
	eventPaymentSucceeded = "payment.succeeded"
	eventPaymentCanceled  = "payment.canceled"
	eventPaymentFailed    = "payment.failed"
	eventRefundSucceeded  = "refund.succeeded"
)

// FlexibleID は数値でも文字列でも届くIDを受ける（プロバイダのmetadataは文字列のことがある）。
type FlexibleID int64

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexibleID(n)
	return nil
}

type ProviderAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type ProviderObject struct {
	ID       string         `json:"id"`
	Amount   ProviderAmount `json:"amount"`
	Metadata struct {
		OrderID FlexibleID `json:"order_id"`
	} `json:"metadata"`
}

// プロバイダwebhookのボディ
type ProviderEvent struct {
	Event  string          `json:"event"`
	Object json.RawMessage `json:"object"`
}

type ProviderWebhookOutput struct {
	Status string `json:"status"`
}

// PaymentWebhookUsecase は外部プロバイダからの通知で注文を確定する。
type PaymentWebhookUsecase struct {
	tx repo.TransactionManager
}

func NewPaymentWebhookUsecase(tx repo.TransactionManager) *PaymentWebhookUsecase {
	return &PaymentWebhookUsecase{tx: tx}
}

// HandleEvent はイベント名を注文ステータスに写す。
// payment.succeeded → paid。canceled/failed/refundは failed。
// それ以外の中間イベントは受理だけして何もしない。
// 同じ終端イベントの再送は同じ値への更新になるだけなのでガードしない。
func (u *PaymentWebhookUsecase) HandleEvent(ctx context.Context, in ProviderEvent) (ProviderWebhookOutput, error) {
	var obj ProviderObject
	if len(in.Object) > 0 {
		if err := json.Unmarshal(in.Object, &obj); err != nil {
			return ProviderWebhookOutput{}, NewHTTPError(http.StatusBadRequest, "invalid object")
		}
	}

	orderID := int64(obj.Metadata.OrderID)
	if orderID <= 0 {
		return ProviderWebhookOutput{}, NewHTTPError(http.StatusBadRequest, "order_id missing")
	}

	var out ProviderWebhookOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch in.Event {
		case eventPaymentSucceeded:
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusPaid); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Status = "paid"

		case eventPaymentCanceled, eventPaymentFailed, eventRefundSucceeded:
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusFailed); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Status = "failed"

		default:
			//中間イベントは受理のみ
			out.Status = "ignored"
		}

		return nil
	})

	if err != nil {
		return ProviderWebhookOutput{}, err
	}
	return out, nil
}
