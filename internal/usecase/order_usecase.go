package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentProvider は外部決済ゲートウェイの約束。
// 決済を作成して確認ページのURLを返す。最終的な遷移はwebhookで届く。
type PaymentProvider interface {
	CreatePayment(ctx context.Context, order model.Order, method model.PaymentMethod, returnURL string) (string, error)
}

// OrderUsecase はチェックアウトと注文照会。
// providerがnilのときはデモ決済（card即時承認）だけで動く。
type OrderUsecase struct {
	tx        repo.TransactionManager
	provider  PaymentProvider
	returnURL string
}

func NewOrderUsecase(tx repo.TransactionManager, provider PaymentProvider, returnURL string) *OrderUsecase {
	return &OrderUsecase{tx: tx, provider: provider, returnURL: returnURL}
}

type CheckoutInput struct {
	PaymentMethod string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderOutput struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"user_id"`
	Total             decimal.Decimal   `json:"total"`
	Status            string            `json:"status"`
	FulfillmentStatus string            `json:"fulfillment_status"`
	PaymentMethod     string            `json:"payment_method"`
	TrackingNumber    string            `json:"tracking_number"`
	CreatedAt         time.Time         `json:"created_at"`
	Items             []OrderItemOutput `json:"items"`
}

// チェックアウトの結果。残高不足のときはDeficitに不足額が入る。
type CheckoutOutput struct {
	Order           OrderOutput      `json:"order"`
	Result          string           `json:"result"`
	ConfirmationURL string           `json:"confirmation_url,omitempty"`
	NeedTopUp       bool             `json:"need_topup,omitempty"`
	Deficit         *decimal.Decimal `json:"deficit,omitempty"`
}

// OrderTotal は明細から合計を出す（数量×単価の合計を2桁に丸める）。
func OrderTotal(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total.Round(2)
}

func parsePaymentMethod(s string) (model.PaymentMethod, bool) {
	switch model.PaymentMethod(s) {
	case model.PaymentMethodWallet:
		return model.PaymentMethodWallet, true
	case model.PaymentMethodCard:
		return model.PaymentMethodCard, true
	case model.PaymentMethodBalance:
		return model.PaymentMethodBalance, true
	case model.PaymentMethodSBP:
		return model.PaymentMethodSBP, true
	}
	return "", false
}

// Checkout はカートから注文を作り、支払い方法ごとに決済する。
//
// 注文作成はトランザクションで行い、カート行をFOR UPDATEでロックして
// 同じカートからの二重チェックアウトを直列化する。
// カート明細が消えるのは決済が成功した経路だけ。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	method, ok := parsePaymentMethod(in.PaymentMethod)
	if !ok {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	var (
		order      model.Order
		orderItems []model.OrderItem
		cartID     int64
	)

	//注文の作成（明細コピー＋合計再計算＋追跡番号）
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//二重チェックアウト対策の行ロック
		if _, err := r.Carts().LockByID(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//スナップショット（単価はカートのprice_at_add、カタログの現在価格は見ない）
		orderItems = make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				UnitPrice: ci.PriceAtAdd,
			})
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:            userID,
			Status:            model.OrderStatusCreated,
			PaymentMethod:     method,
			FulfillmentStatus: model.FulfillmentPlaced,
			Total:             decimal.Zero,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//合計を再計算して保存
		total := OrderTotal(orderItems)
		if err := r.Orders().UpdateTotal(ctx, orderID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//追跡番号はIDが採番された後にしか作れないので2回目の更新で入れる
		tracking := model.TrackingNumberFor(orderID)
		if err := r.Orders().SetTrackingNumber(ctx, orderID, tracking); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order = model.Order{
			ID:                orderID,
			UserID:            userID,
			Total:             total,
			Status:            model.OrderStatusCreated,
			PaymentMethod:     method,
			FulfillmentStatus: model.FulfillmentPlaced,
			TrackingNumber:    tracking,
			CreatedAt:         now,
		}
		cartID = cart.ID
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	return u.settle(ctx, order, orderItems, cartID)
}

// settle は作成済みの注文を支払い方法に応じて決済する。
func (u *OrderUsecase) settle(ctx context.Context, order model.Order, items []model.OrderItem, cartID int64) (CheckoutOutput, error) {
	out := CheckoutOutput{}

	switch order.PaymentMethod {
	case model.PaymentMethodWallet, model.PaymentMethodBalance:
		//残高払い：足りれば即時引き落とし、足りなければfailed＋不足額
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			debited, err := r.Users().DebitBalanceIfEnough(ctx, order.UserID, order.Total)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if !debited {
				if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusFailed); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				order.Status = model.OrderStatusFailed

				user, err := r.Users().FindByID(ctx, order.UserID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}

				deficit := order.Total.Sub(user.Balance).Round(2)
				out.Result = "failed"
				out.NeedTopUp = true
				out.Deficit = &deficit
				return nil
			}

			//台帳に出金を1行
			orderID := order.ID
			if err := r.BalanceTransactions().Create(ctx, model.BalanceTransaction{
				UserID:  order.UserID,
				OrderID: &orderID,
				Amount:  order.Total,
				Type:    model.BalanceTransactionDebit,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			order.Status = model.OrderStatusPaid

			//成功したときだけカートを空にする
			if err := r.CartItems().DeleteAllByCartID(ctx, cartID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			out.Result = "succeeded"
			return nil
		})
		if err != nil {
			return CheckoutOutput{}, err
		}

	case model.PaymentMethodCard, model.PaymentMethodSBP:
		//外部プロバイダが設定されていればリダイレクトURLを返す。
		//カートはwebhookで確定するまで残す。プロバイダが落ちたらデモ処理へフォールバック
		if u.provider != nil {
			url, err := u.provider.CreatePayment(ctx, order, order.PaymentMethod, u.returnURL)
			if err == nil {
				out.Result = "redirect"
				out.ConfirmationURL = url
				out.Order = u.toOrderOutput(ctx, order, items)
				return out, nil
			}
		}

		if order.PaymentMethod == model.PaymentMethodCard {
			//デモ：外部検証なしで即時承認
			err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
				if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				order.Status = model.OrderStatusPaid

				if err := r.CartItems().DeleteAllByCartID(ctx, cartID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				return nil
			})
			if err != nil {
				return CheckoutOutput{}, err
			}
			out.Result = "succeeded"
		} else {
			//sbpはプロバイダ無しでは確定できないのでprocessingのまま
			err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
				return r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusProcessing)
			})
			if err != nil {
				return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			order.Status = model.OrderStatusProcessing
			out.Result = "processing"
		}
	}

	out.Order = u.toOrderOutput(ctx, order, items)
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, u.toOrderOutputWith(ctx, r, o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = u.toOrderOutputWith(ctx, r, o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) toOrderOutput(ctx context.Context, o model.Order, items []model.OrderItem) OrderOutput {
	var out OrderOutput

	_ = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		out = u.toOrderOutputWith(ctx, r, o, items)
		return nil
	})

	return out
}

func (u *OrderUsecase) toOrderOutputWith(ctx context.Context, r repo.TxRepos, o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		name := ""
		if p, err := r.Products().FindByID(ctx, it.ProductID); err == nil {
			name = p.Name
		}
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return OrderOutput{
		ID:                o.ID,
		UserID:            o.UserID,
		Total:             o.Total,
		Status:            string(o.Status),
		FulfillmentStatus: string(o.FulfillmentStatus),
		PaymentMethod:     string(o.PaymentMethod),
		TrackingNumber:    o.TrackingNumber,
		CreatedAt:         o.CreatedAt,
		Items:             outItems,
	}
}
