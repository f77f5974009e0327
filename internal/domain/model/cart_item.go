package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細
// UnitPriceSnapshot（追加時点の価格）を必ず保存。
type CartItem struct {
	ID                string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CartID            string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_item" json:"cart_id"`
	ItemID            string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_items_cart_item" json:"item_id"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(18,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 明細 + 料理名（menu_itemsとjoinした結果）
type CartItemDetail struct {
	ID                string
	CartID            string
	ItemID            string
	ItemName          string
	Quantity          int64
	UnitPriceSnapshot decimal.Decimal
}

// 小計
func (d CartItemDetail) Subtotal() decimal.Decimal {
	return d.UnitPriceSnapshot.Mul(decimal.NewFromInt(d.Quantity))
}
