package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders         repo.OrderRepository
	orderItems     repo.OrderItemRepository
	carts          repo.CartRepository
	cartItems      repo.CartItemRepository
	products       repo.ProductRepository
	productHistory repo.ProductHistoryRepository
	users          repo.UserRepository
	balanceTxs     repo.BalanceTransactionRepository
	payments       repo.PaymentMockRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                           { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository                   { return r.orderItems }
func (r *txReposGorm) Carts() repo.CartRepository                             { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository                     { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository                       { return r.products }
func (r *txReposGorm) ProductHistory() repo.ProductHistoryRepository          { return r.productHistory }
func (r *txReposGorm) Users() repo.UserRepository                             { return r.users }
func (r *txReposGorm) BalanceTransactions() repo.BalanceTransactionRepository { return r.balanceTxs }
func (r *txReposGorm) Payments() repo.PaymentMockRepository                   { return r.payments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:         NewOrderGormRepository(tx),
			orderItems:     NewOrderItemGormRepository(tx),
			carts:          NewCartGormRepository(tx),
			cartItems:      NewCartItemGormRepository(tx),
			products:       NewProductGormRepository(tx),
			productHistory: NewProductHistoryGormRepository(tx),
			users:          NewUserGormRepository(tx),
			balanceTxs:     NewBalanceTransactionGormRepository(tx),
			payments:       NewPaymentMockGormRepository(tx),
		}
		return fn(r)
	})
}
