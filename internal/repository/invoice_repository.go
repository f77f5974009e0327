package repository

import (
	"context"

	"foodstore/internal/domain/model"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	// 他人の請求書はErrNotFound
	FindByIDForUser(ctx context.Context, invoiceID string, userID string) (model.Invoice, error)
}

type InvoiceLineRepository interface {
	CreateBulk(ctx context.Context, invoiceID string, lines []model.InvoiceLine) error
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]model.InvoiceLine, error)
}

type OrderHistoryRepository interface {
	Create(ctx context.Context, h *model.OrderHistory) error
	ListByUserID(ctx context.Context, userID string) ([]model.OrderHistory, error)
}
