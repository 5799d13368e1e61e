package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func providerEvent(event string, objectJSON string) usecase.ProviderEvent {
	return usecase.ProviderEvent{
		Event:  event,
		Object: json.RawMessage(objectJSON),
	}
}

func TestPaymentWebhookUsecase_SucceededMarksOrderPaid(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewPaymentWebhookUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42}, nil)
	tx.repos.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusPaid).Return(nil)

	out, err := uc.HandleEvent(context.Background(),
		providerEvent("payment.succeeded", `{"id":"pay_1","metadata":{"order_id":"42"}}`))
	assert.NoError(t, err)
	assert.Equal(t, "paid", out.Status)
}

func TestPaymentWebhookUsecase_TerminalFailureEventsMarkOrderFailed(t *testing.T) {
	for _, event := range []string{"payment.canceled", "payment.failed", "refund.succeeded"} {
		t.Run(event, func(t *testing.T) {
			tx := newFakeTxManager()
			uc := usecase.NewPaymentWebhookUsecase(tx)

			tx.repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42}, nil)
			tx.repos.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusFailed).Return(nil)

			out, err := uc.HandleEvent(context.Background(),
				providerEvent(event, `{"metadata":{"order_id":42}}`))
			assert.NoError(t, err)
			assert.Equal(t, "failed", out.Status)
		})
	}
}

func TestPaymentWebhookUsecase_IntermediateEventIsIgnored(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewPaymentWebhookUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42}, nil)

	out, err := uc.HandleEvent(context.Background(),
		providerEvent("payment.waiting_for_capture", `{"metadata":{"order_id":42}}`))
	assert.NoError(t, err)
	assert.Equal(t, "ignored", out.Status)

	tx.repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentWebhookUsecase_MissingOrderID(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewPaymentWebhookUsecase(tx)

	_, err := uc.HandleEvent(context.Background(),
		providerEvent("payment.succeeded", `{"id":"pay_1","metadata":{}}`))
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestPaymentWebhookUsecase_UnknownOrder(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewPaymentWebhookUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, int64(999)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.HandleEvent(context.Background(),
		providerEvent("payment.succeeded", `{"metadata":{"order_id":999}}`))
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// metadataのorder_idは文字列でも数値でも受ける
func TestFlexibleID_AcceptsStringAndNumber(t *testing.T) {
	var obj usecase.ProviderObject

	assert.NoError(t, json.Unmarshal([]byte(`{"metadata":{"order_id":"42"}}`), &obj))
	assert.Equal(t, int64(42), int64(obj.Metadata.OrderID))

	assert.NoError(t, json.Unmarshal([]byte(`{"metadata":{"order_id":42}}`), &obj))
	assert.Equal(t, int64(42), int64(obj.Metadata.OrderID))
}
