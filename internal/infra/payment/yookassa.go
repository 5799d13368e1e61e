package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"

	"github.com/google/uuid"
)

const defaultAPIURL = "https://api.yookassa.ru/v3/payments"

// YooKassaClient は外部決済プロバイダのHTTPクライアント。
// 注文IDをmetadataに入れて決済を作成し、リダイレクト先URLを返す。
type YooKassaClient struct {
	shopID    string
	secretKey string
	apiURL    string
	client    *http.Client
}

func NewYooKassaClient(shopID string, secretKey string) *YooKassaClient {
	return &YooKassaClient{
		shopID:    shopID,
		secretKey: secretKey,
		apiURL:    defaultAPIURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type amountPayload struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmationPayload struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
}

type createPaymentRequest struct {
	Amount            amountPayload          `json:"amount"`
	Capture           bool                   `json:"capture"`
	Confirmation      confirmationPayload    `json:"confirmation"`
	Metadata          map[string]interface{} `json:"metadata"`
	Description       string                 `json:"description"`
	PaymentMethodData map[string]string      `json:"payment_method_data,omitempty"`
}

type createPaymentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		Type            string `json:"type"`
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// CreatePayment は決済を作成して確認ページのURLを返す。
// 鍵の未設定やAPIエラーはそのままerrorで返す（呼び出し側がデモ処理へフォールバック）。
func (c *YooKassaClient) CreatePayment(ctx context.Context, order model.Order, method model.PaymentMethod, returnURL string) (string, error) {
	if c.shopID == "" || c.secretKey == "" {
		return "", fmt.Errorf("yookassa keys are not configured")
	}

	reqBody := createPaymentRequest{
		Amount:       amountPayload{Value: order.Total.StringFixed(2), Currency: "RUB"},
		Capture:      true,
		Confirmation: confirmationPayload{Type: "redirect", ReturnURL: returnURL},
		Metadata:     map[string]interface{}{"order_id": order.ID},
		Description:  fmt.Sprintf("Order #%d", order.ID),
	}

	switch method {
	case model.PaymentMethodSBP:
		reqBody.PaymentMethodData = map[string]string{"type": "sbp"}
	case model.PaymentMethodCard:
		reqBody.PaymentMethodData = map[string]string{"type": "bank_card"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.shopID, c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	//同じ注文の再送で二重決済にならないように
	req.Header.Set("Idempotence-Key", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("yookassa create payment: status %d", resp.StatusCode)
	}

	var out createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Confirmation.ConfirmationURL == "" {
		return "", fmt.Errorf("no confirmation url from yookassa")
	}

	return out.Confirmation.ConfirmationURL, nil
}
