package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文履歴（一覧表示用に請求書の要約を持つ）
type OrderHistory struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	InvoiceID   string          `gorm:"type:varchar(36);not null;uniqueIndex" json:"invoice_id"`
	CompletedAt time.Time       `gorm:"not null" json:"completed_at"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
}

func (OrderHistory) TableName() string {
	return "order_histories"
}
