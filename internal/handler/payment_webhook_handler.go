package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 外部決済プロバイダからの通知を受ける。認証なし。
type PaymentWebhookHandler struct {
	uc *usecase.PaymentWebhookUsecase
}

// DI
func NewPaymentWebhookHandler(uc *usecase.PaymentWebhookUsecase) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{uc: uc}
}

func (h *PaymentWebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payments/yookassa/webhook", h.webhook)
}

func (h *PaymentWebhookHandler) webhook(c echo.Context) error {
	var ev usecase.ProviderEvent
	if err := c.Bind(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.HandleEvent(c.Request().Context(), ev)
	if err != nil {
		return writeError(c, err)
	}

	//中間イベントは受理のみ
	if out.Status == "ignored" {
		return c.JSON(http.StatusAccepted, out)
	}

	return c.JSON(http.StatusOK, out)
}
