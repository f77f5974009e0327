package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	msgCheckoutOK     = "order placed successfully"
	msgCheckoutFailed = "error placing order, please try again"
	msgCartChanged    = "cart was changed by another request"
)

// CheckoutUsecase はカートを請求書に変える
type CheckoutUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	tx           repo.TransactionManager
	publisher    InvoiceEventPublisher
	idGen        IDGenerator
	clock        Clock
	log          *slog.Logger
}

func NewCheckoutUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	tx repo.TransactionManager,
	publisher InvoiceEventPublisher,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		tx:           tx,
		publisher:    publisher,
		idGen:        idGen,
		clock:        clock,
		log:          log,
	}
}

type InvoiceLineView struct {
	LineID    string          `json:"line_id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type InvoiceView struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Total     decimal.Decimal   `json:"total"`
	Lines     []InvoiceLineView `json:"lines"`
}

type CheckoutResult struct {
	Message string          `json:"message"`
	Invoice InvoiceView     `json:"invoice"`
	Total   decimal.Decimal `json:"total"`
}

// Checkout はカートの中身で請求書・明細・注文履歴を作り、カートを空にする。
// 全部1トランザクション。途中で失敗したら何も残らない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string) (CheckoutResult, error) {
	if userID == "" {
		return CheckoutResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//カートと明細を先に読む
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutResult{}, NewHTTPError(http.StatusBadRequest, msgCartEmpty)
	}
	if err != nil {
		return CheckoutResult{}, internalError("db error", err)
	}

	lines, err := u.cartItemRepo.ListDetailedByCartID(ctx, cart.ID)
	if err != nil {
		return CheckoutResult{}, internalError("db error", err)
	}
	if len(lines) == 0 {
		return CheckoutResult{}, NewHTTPError(http.StatusBadRequest, msgCartEmpty)
	}

	var (
		invoice      model.Invoice
		invoiceLines []model.InvoiceLine
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート行をロックして、読んだ後に誰も会計していないか確認
		locked, err := r.Carts().LockByID(ctx, cart.ID)
		if err != nil {
			return err
		}
		if locked.Version != cart.Version {
			return NewHTTPError(http.StatusConflict, msgCartChanged)
		}

		//ロック中に読み直した明細で計算する
		current, err := r.CartItems().ListDetailedByCartID(ctx, locked.ID)
		if err != nil {
			return err
		}
		if len(current) == 0 {
			return NewHTTPError(http.StatusConflict, msgCartChanged)
		}

		now := u.clock.Now().UTC()
		total := decimal.Zero
		invoiceLines = make([]model.InvoiceLine, 0, len(current))
		for _, l := range current {
			total = total.Add(l.Subtotal())
			invoiceLines = append(invoiceLines, model.InvoiceLine{
				ID:                u.idGen.NewID(),
				ItemID:            l.ItemID,
				ItemNameSnapshot:  l.ItemName,
				Quantity:          l.Quantity,
				UnitPriceSnapshot: l.UnitPriceSnapshot,
			})
		}

		// 請求書を先に保存
		invoice = model.Invoice{
			ID:          u.idGen.NewID(),
			UserID:      userID,
			Status:      model.InvoiceStatusPaid,
			TotalAmount: total,
			CreatedAt:   now,
		}
		if err := r.Invoices().Create(ctx, &invoice); err != nil {
			return err
		}

		if err := r.InvoiceLines().CreateBulk(ctx, invoice.ID, invoiceLines); err != nil {
			return err
		}

		// 会計した明細だけ消す（カートは残す）
		if err := r.CartItems().RemoveCheckedOut(ctx, locked.ID, current); err != nil {
			return err
		}
		if err := r.Carts().BumpVersion(ctx, locked.ID, locked.Version); err != nil {
			if errors.Is(err, repo.ErrStaleVersion) {
				return NewHTTPError(http.StatusConflict, msgCartChanged)
			}
			return err
		}

		return r.OrderHistories().Create(ctx, &model.OrderHistory{
			ID:          u.idGen.NewID(),
			UserID:      userID,
			InvoiceID:   invoice.ID,
			CompletedAt: now,
			TotalAmount: total,
		})
	})
	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return CheckoutResult{}, he
		}
		u.log.ErrorContext(ctx, "checkout rolled back",
			slog.String("action", "checkout"),
			slog.String("user_id", userID),
			slog.String("cart_id", cart.ID),
			slog.Any("error", err),
		)
		return CheckoutResult{}, internalError(msgCheckoutFailed, err)
	}

	u.log.InfoContext(ctx, "invoice created",
		slog.String("action", "checkout"),
		slog.String("user_id", userID),
		slog.String("invoice_id", invoice.ID),
		slog.String("total", invoice.TotalAmount.String()),
	)
	u.publishPaid(ctx, invoice, invoiceLines)

	view := toInvoiceView(invoice, invoiceLines)
	return CheckoutResult{
		Message: msgCheckoutOK,
		Invoice: view,
		Total:   invoice.TotalAmount,
	}, nil
}

// commit後の通知。失敗しても会計は成功のまま。
func (u *CheckoutUsecase) publishPaid(ctx context.Context, inv model.Invoice, lines []model.InvoiceLine) {
	if u.publisher == nil {
		return
	}

	ev := model.InvoicePaidEvent{
		InvoiceID:   inv.ID,
		UserID:      inv.UserID,
		TotalAmount: inv.TotalAmount,
		PaidAt:      inv.CreatedAt,
		Lines:       make([]model.InvoicePaidLine, 0, len(lines)),
	}
	for _, l := range lines {
		ev.Lines = append(ev.Lines, model.InvoicePaidLine{
			ItemID:   l.ItemID,
			ItemName: l.ItemNameSnapshot,
			Quantity: l.Quantity,
		})
	}

	if err := u.publisher.PublishInvoicePaid(ctx, ev); err != nil {
		u.log.WarnContext(ctx, "invoice event not published",
			slog.String("action", "invoice_paid_publish"),
			slog.String("invoice_id", inv.ID),
			slog.Any("error", err),
		)
	}
}

func toInvoiceView(inv model.Invoice, lines []model.InvoiceLine) InvoiceView {
	out := make([]InvoiceLineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, InvoiceLineView{
			LineID:    l.ID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemNameSnapshot,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceSnapshot,
			Subtotal:  l.Subtotal(),
		})
	}

	return InvoiceView{
		ID:        inv.ID,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
		Total:     inv.TotalAmount,
		Lines:     out,
	}
}
