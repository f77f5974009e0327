package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID         string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	ImageURL   string          `gorm:"type:varchar(512)" json:"image_url"`
	CategoryID string          `gorm:"type:varchar(64);not null;index" json:"category_id"`
	Category   *MenuCategory   `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	IsActive   bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 部分更新。nilは「指定なし」。
type MenuItemPatch struct {
	Name       *string
	Price      *decimal.Decimal
	ImageURL   *string
	CategoryID *string
}

func (p MenuItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.ImageURL == nil && p.CategoryID == nil
}
