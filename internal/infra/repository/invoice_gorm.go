package repository

import (
	"context"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

// DI
func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

var _ repo.InvoiceRepository = (*InvoiceGormRepository)(nil)

// 請求書作成
func (r *InvoiceGormRepository) Create(ctx context.Context, inv *model.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(inv).Error
}

// 自分の請求書だけ取得
func (r *InvoiceGormRepository) FindByIDForUser(ctx context.Context, invoiceID string, userID string) (model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", invoiceID, userID).
		First(&inv).Error
	if err != nil {
		return model.Invoice{}, translateError(err)
	}
	return inv, nil
}

type InvoiceLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewInvoiceLineGormRepository(db *gorm.DB) *InvoiceLineGormRepository {
	return &InvoiceLineGormRepository{db: db}
}

var _ repo.InvoiceLineRepository = (*InvoiceLineGormRepository)(nil)

// 明細をまとめてINSERT
func (r *InvoiceLineGormRepository) CreateBulk(ctx context.Context, invoiceID string, lines []model.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	for i := range lines {
		lines[i].InvoiceID = invoiceID
		if lines[i].ID == "" {
			lines[i].ID = uuid.NewString()
		}
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *InvoiceLineGormRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]model.InvoiceLine, error) {
	var lines []model.InvoiceLine
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("item_name_snapshot asc").
		Find(&lines).Error
	if err != nil {
		return []model.InvoiceLine{}, err
	}
	return lines, nil
}

type OrderHistoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderHistoryGormRepository(db *gorm.DB) *OrderHistoryGormRepository {
	return &OrderHistoryGormRepository{db: db}
}

var _ repo.OrderHistoryRepository = (*OrderHistoryGormRepository)(nil)

func (r *OrderHistoryGormRepository) Create(ctx context.Context, h *model.OrderHistory) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(h).Error
}

// 新しい順
func (r *OrderHistoryGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.OrderHistory, error) {
	var hs []model.OrderHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Find(&hs).Error
	if err != nil {
		return []model.OrderHistory{}, err
	}
	return hs, nil
}
