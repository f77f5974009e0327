package model

import (
	"github.com/shopspring/decimal"
)

type InvoiceLine struct {
	ID                string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	InvoiceID         string          `gorm:"type:varchar(36);not null;index" json:"invoice_id"`
	ItemID            string          `gorm:"type:varchar(64);not null;index" json:"item_id"`
	ItemNameSnapshot  string          `gorm:"type:varchar(255);not null" json:"item_name_snapshot"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price_snapshot"`
}

func (l InvoiceLine) Subtotal() decimal.Decimal {
	return l.UnitPriceSnapshot.Mul(decimal.NewFromInt(l.Quantity))
}
