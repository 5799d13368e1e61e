package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 会員はuser_idで、ゲストは不透明なカートトークンでカートを引きます。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// リクエストの主体。UserIDが0より大きければ会員、そうでなければ
// Token（X-Cart-Tokenヘッダ）でゲストカートを引く。
type CartIdentity struct {
	UserID int64
	Token  string
}

type CartItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartTokenはゲストカートのときだけ返す（クライアントが次回以降ヘッダで送る）。
type CartResponse struct {
	CartToken string             `json:"cart_token,omitempty"`
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// resolveCart は主体のカートを取得（無ければ作成）。
// 会員は1ユーザー1カート。ゲストはトークンが無効なら新しいカートを発行する。
func (u *CartUsecase) resolveCart(ctx context.Context, id CartIdentity) (model.Cart, error) {
	if id.UserID > 0 {
		cart, err := u.cartRepo.GetOrCreateByUserID(ctx, id.UserID)
		if err != nil {
			return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return cart, nil
	}

	if id.Token != "" {
		cart, err := u.cartRepo.FindGuestByToken(ctx, id.Token)
		if err == nil {
			return cart, nil
		}
		if err != repo.ErrNotFound {
			return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//無効なトークンは作り直し
	}

	cart, err := u.cartRepo.CreateGuest(ctx, uuid.NewString())
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cart, nil
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, id CartIdentity) (CartResponse, error) {
	cart, err := u.resolveCart(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	return u.buildCartResponse(ctx, cart)
}

// AddToCart はカートに追加（同一商品は数量加算、価格スナップショットは初回のまま）。
func (u *CartUsecase) AddToCart(ctx context.Context, id CartIdentity, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//数量は最低1に切り上げる
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	cart, err := u.resolveCart(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	//商品チェック
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）。price_at_addは「追加時点の価格」
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, qty, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 数量変更（所有チェック付き）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, id CartIdentity, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	cart, err := u.resolveCart(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	owned, err := u.cartItemRepo.IsOwnedByCart(ctx, cartItemID, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, qty); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, id CartIdentity, cartItemID int64) (CartResponse, error) {
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, err := u.resolveCart(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	owned, err := u.cartItemRepo.IsOwnedByCart(ctx, cartItemID, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 選択削除。自分のカートに属するidだけ消し、他は黙って無視する。
func (u *CartUsecase) DeleteCartItems(ctx context.Context, id CartIdentity, itemIDs []int64) (CartResponse, error) {
	cart, err := u.resolveCart(ctx, id)
	if err != nil {
		return CartResponse{}, err
	}

	if len(itemIDs) > 0 {
		if err := u.cartItemRepo.DeleteBatch(ctx, cart.ID, itemIDs); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.buildCartResponse(ctx, cart)
}

// カートの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		name := ""
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			name = p.Name
		}

		sub := it.Subtotal()

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      name,
			Price:     it.PriceAtAdd,
			Quantity:  it.Quantity,
			Subtotal:  sub,
		})

		total = total.Add(sub)
	}

	out := CartResponse{
		Items: respItems,
		Total: total.Round(2),
	}
	//ゲストにはトークンを返す
	if cart.UserID == nil {
		out.CartToken = cart.Token
	}

	return out, nil
}
