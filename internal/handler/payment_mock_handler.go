package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// モック決済ゲートウェイのHTTP。
type PaymentMockHandler struct {
	uc *usecase.PaymentMockUsecase
}

// DI
func NewPaymentMockHandler(uc *usecase.PaymentMockUsecase) *PaymentMockHandler {
	return &PaymentMockHandler{uc: uc}
}

type PaymentCreateRequest struct {
	OrderID  int64  `json:"order_id"`
	Scenario string `json:"scenario"`
}

type PaymentConfirmRequest struct {
	PaymentID int64 `json:"payment_id"`
}

type PaymentWebhookRequest struct {
	PaymentID int64  `json:"payment_id"`
	Result    string `json:"result"`
}

// webhookだけは外部から叩かれるので認証なし
func (h *PaymentMockHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/payments/mock")

	g.POST("/create", h.create, middleware.AuthJWT(cfg))
	g.POST("/confirm", h.confirm, middleware.AuthJWT(cfg))
	g.POST("/webhook", h.webhook)
}

func (h *PaymentMockHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PaymentCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePayment(c.Request().Context(), userID, usecase.CreatePaymentInput{
		OrderID:  req.OrderID,
		Scenario: req.Scenario,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *PaymentMockHandler) confirm(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PaymentConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ConfirmPayment(c.Request().Context(), userID, req.PaymentID)
	if err != nil {
		return writeError(c, err)
	}

	//pendingシナリオは202で「処理中」を返す
	if out.Status == "processing" {
		return c.JSON(http.StatusAccepted, out)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentMockHandler) webhook(c echo.Context) error {
	var req PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.HandleWebhook(c.Request().Context(), usecase.MockWebhookInput{
		PaymentID: req.PaymentID,
		Result:    req.Result,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
