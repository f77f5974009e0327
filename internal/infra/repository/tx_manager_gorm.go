package repository

import (
	"context"

	repo "foodstore/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users          repo.UserRepository
	carts          repo.CartRepository
	cartItems      repo.CartItemRepository
	invoices       repo.InvoiceRepository
	invoiceLines   repo.InvoiceLineRepository
	orderHistories repo.OrderHistoryRepository
}

func (r *txReposGorm) Users() repo.UserRepository                   { return r.users }
func (r *txReposGorm) Carts() repo.CartRepository                   { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository           { return r.cartItems }
func (r *txReposGorm) Invoices() repo.InvoiceRepository             { return r.invoices }
func (r *txReposGorm) InvoiceLines() repo.InvoiceLineRepository     { return r.invoiceLines }
func (r *txReposGorm) OrderHistories() repo.OrderHistoryRepository { return r.orderHistories }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

var _ repo.TransactionManager = (*TxManagerGorm)(nil)

// fnがerrorを返したらrollback
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:          NewUserGormRepository(tx),
			carts:          NewCartGormRepository(tx),
			cartItems:      NewCartItemGormRepository(tx),
			invoices:       NewInvoiceGormRepository(tx),
			invoiceLines:   NewInvoiceLineGormRepository(tx),
			orderHistories: NewOrderHistoryGormRepository(tx),
		}
		return fn(r)
	})
}
