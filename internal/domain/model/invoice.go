package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid InvoiceStatus = "Paid"
)

// 会計済みの請求書。作成後は変更しない。
type Invoice struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Status      InvoiceStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
}

// 会計完了のイベント（厨房などへ通知）
type InvoicePaidEvent struct {
	InvoiceID   string            `json:"invoice_id"`
	UserID      string            `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	PaidAt      time.Time         `json:"paid_at"`
	Lines       []InvoicePaidLine `json:"lines"`
}

type InvoicePaidLine struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}
