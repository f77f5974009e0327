package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	repo "foodstore/internal/repository"

	"github.com/shopspring/decimal"
)

// 会計済みの請求書と注文履歴の参照
type OrderUsecase struct {
	invoices  repo.InvoiceRepository
	lines     repo.InvoiceLineRepository
	histories repo.OrderHistoryRepository
}

func NewOrderUsecase(invoices repo.InvoiceRepository, lines repo.InvoiceLineRepository, histories repo.OrderHistoryRepository) *OrderUsecase {
	return &OrderUsecase{invoices: invoices, lines: lines, histories: histories}
}

type OrderHistoryView struct {
	InvoiceID   string          `json:"invoice_id"`
	CompletedAt time.Time       `json:"completed_at"`
	Total       decimal.Decimal `json:"total"`
}

// GetInvoice は自分の請求書を明細つきで返す
func (u *OrderUsecase) GetInvoice(ctx context.Context, userID string, invoiceID string) (InvoiceView, error) {
	if userID == "" {
		return InvoiceView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	inv, err := u.invoices.FindByIDForUser(ctx, invoiceID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		//他人の請求書は「存在しない扱い」にする
		return InvoiceView{}, NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	if err != nil {
		return InvoiceView{}, internalError("db error", err)
	}

	lines, err := u.lines.ListByInvoiceID(ctx, inv.ID)
	if err != nil {
		return InvoiceView{}, internalError("db error", err)
	}
	return toInvoiceView(inv, lines), nil
}

// ListHistory は注文履歴（新しい順）
func (u *OrderUsecase) ListHistory(ctx context.Context, userID string) ([]OrderHistoryView, error) {
	if userID == "" {
		return []OrderHistoryView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	hs, err := u.histories.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderHistoryView{}, internalError("db error", err)
	}

	out := make([]OrderHistoryView, 0, len(hs))
	for _, h := range hs {
		out = append(out, OrderHistoryView{
			InvoiceID:   h.InvoiceID,
			CompletedAt: h.CompletedAt,
			Total:       h.TotalAmount,
		})
	}
	return out, nil
}
