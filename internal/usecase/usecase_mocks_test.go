package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

var _ repo.ProductRepository = (*ProductRepoMock)(nil)

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

var _ repo.CategoryRepository = (*CategoryRepoMock)(nil)

type ProductHistoryRepoMock struct{ mock.Mock }

func (m *ProductHistoryRepoMock) CreatePriceHistory(ctx context.Context, h model.PriceHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *ProductHistoryRepoMock) CreateChangeLog(ctx context.Context, l model.ProductChangeLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *ProductHistoryRepoMock) ListPriceHistory(ctx context.Context, productID int64) ([]model.PriceHistory, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.PriceHistory)
	return items, args.Error(1)
}

func (m *ProductHistoryRepoMock) ListChangeLogs(ctx context.Context, productID int64) ([]model.ProductChangeLog, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.ProductChangeLog)
	return items, args.Error(1)
}

var _ repo.ProductHistoryRepository = (*ProductHistoryRepoMock)(nil)

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindGuestByToken(ctx context.Context, token string) (model.Cart, error) {
	args := m.Called(ctx, token)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) CreateGuest(ctx context.Context, token string) (model.Cart, error) {
	args := m.Called(ctx, token)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) LockByID(ctx context.Context, cartID int64) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

var _ repo.CartRepository = (*CartRepoMock)(nil)

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, priceAtAdd decimal.Decimal) error {
	args := m.Called(ctx, cartID, productID, addQty, priceAtAdd)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteBatch(ctx context.Context, cartID int64, itemIDs []int64) error {
	args := m.Called(ctx, cartID, itemIDs)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteAllByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByCart(ctx context.Context, cartItemID int64, cartID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, cartID)
	return args.Bool(0), args.Error(1)
}

var _ repo.CartItemRepository = (*CartItemRepoMock)(nil)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	args := m.Called(ctx, orderID, total)
	return args.Error(0)
}

func (m *OrderRepoMock) SetTrackingNumber(ctx context.Context, orderID int64, trackingNumber string) error {
	args := m.Called(ctx, orderID, trackingNumber)
	return args.Error(0)
}

var _ repo.OrderRepository = (*OrderRepoMock)(nil)

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

var _ repo.OrderItemRepository = (*OrderItemRepoMock)(nil)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) AddBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *UserRepoMock) DebitBalanceIfEnough(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Error(1)
}

var _ repo.UserRepository = (*UserRepoMock)(nil)

type BalanceTxRepoMock struct{ mock.Mock }

func (m *BalanceTxRepoMock) Create(ctx context.Context, tx model.BalanceTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *BalanceTxRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.BalanceTransaction, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.BalanceTransaction)
	return items, args.Error(1)
}

var _ repo.BalanceTransactionRepository = (*BalanceTxRepoMock)(nil)

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.PaymentMock) (model.PaymentMock, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.PaymentMock)
	return created, args.Error(1)
}

func (m *PaymentRepoMock) FindByID(ctx context.Context, paymentID int64) (model.PaymentMock, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.PaymentMock)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

var _ repo.PaymentMockRepository = (*PaymentRepoMock)(nil)

// =====================
// Txの偽物（そのままfnを実行するだけ）
// =====================

type fakeTxRepos struct {
	orders         *OrderRepoMock
	orderItems     *OrderItemRepoMock
	carts          *CartRepoMock
	cartItems      *CartItemRepoMock
	products       *ProductRepoMock
	productHistory *ProductHistoryRepoMock
	users          *UserRepoMock
	balanceTxs     *BalanceTxRepoMock
	payments       *PaymentRepoMock
}

func newFakeTxRepos() *fakeTxRepos {
	return &fakeTxRepos{
		orders:         new(OrderRepoMock),
		orderItems:     new(OrderItemRepoMock),
		carts:          new(CartRepoMock),
		cartItems:      new(CartItemRepoMock),
		products:       new(ProductRepoMock),
		productHistory: new(ProductHistoryRepoMock),
		users:          new(UserRepoMock),
		balanceTxs:     new(BalanceTxRepoMock),
		payments:       new(PaymentRepoMock),
	}
}

func (f *fakeTxRepos) Orders() repo.OrderRepository                  { return f.orders }
func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository          { return f.orderItems }
func (f *fakeTxRepos) Carts() repo.CartRepository                    { return f.carts }
func (f *fakeTxRepos) CartItems() repo.CartItemRepository            { return f.cartItems }
func (f *fakeTxRepos) Products() repo.ProductRepository              { return f.products }
func (f *fakeTxRepos) ProductHistory() repo.ProductHistoryRepository { return f.productHistory }
func (f *fakeTxRepos) Users() repo.UserRepository                    { return f.users }
func (f *fakeTxRepos) BalanceTransactions() repo.BalanceTransactionRepository {
	return f.balanceTxs
}
func (f *fakeTxRepos) Payments() repo.PaymentMockRepository { return f.payments }

var _ repo.TxRepos = (*fakeTxRepos)(nil)

type fakeTxManager struct {
	repos *fakeTxRepos
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{repos: newFakeTxRepos()}
}

// commit/rollbackはしない。fnをそのまま実行する
func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

var _ repo.TransactionManager = (*fakeTxManager)(nil)

// =====================
// helper
// =====================

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()

	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

func decEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
