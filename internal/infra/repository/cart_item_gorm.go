package repository

import (
	"context"
	"time"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

var _ repo.CartItemRepository = (*CartItemGormRepository)(nil)

// カート明細を料理名つきで一覧取得
func (r *CartItemGormRepository) ListDetailedByCartID(ctx context.Context, cartID string) ([]model.CartItemDetail, error) {
	var rows []model.CartItemDetail

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.cart_id, cart_items.item_id, menu_items.name AS item_name, cart_items.quantity, cart_items.unit_price_snapshot").
		Joins("join menu_items on menu_items.id = cart_items.item_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.created_at asc").
		Order("cart_items.id asc").
		Scan(&rows).Error
	if err != nil {
		return []model.CartItemDetail{}, err
	}
	if rows == nil {
		rows = []model.CartItemDetail{}
	}
	return rows, nil
}

// 同一料理は数量加算
func (r *CartItemGormRepository) AddOrIncrement(ctx context.Context, cartID string, itemID string, unitPrice decimal.Decimal) error {
	now := time.Now()
	line := model.CartItem{
		ID:                uuid.NewString(),
		CartID:            cartID,
		ItemID:            itemID,
		Quantity:          1,
		UnitPriceSnapshot: unitPrice,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// 既存ありだったら数量を増やす（価格は最初のまま）
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + 1"),
				"updated_at": now,
			}),
		}).
		Create(&line).Error
}

// cart_itemがuserのカートに属していれば返す
func (r *CartItemGormRepository) FindOwnedByUser(ctx context.Context, lineID string, userID string) (model.CartItem, error) {
	var line model.CartItem

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.*").
		Joins("join carts on carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", lineID, userID).
		Take(&line).Error
	if err != nil {
		return model.CartItem{}, translateError(err)
	}
	return line, nil
}

// 明細の数量を増減（読んだ値ではなくDBの値に足す）
func (r *CartItemGormRepository) AdjustQuantity(ctx context.Context, lineID string, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND quantity + ? >= 1", lineID, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, lineID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", lineID).Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 会計した明細を外す（カート自体は残す）
// 会計後に数量が増えていたら差分だけ残す。
func (r *CartItemGormRepository) RemoveCheckedOut(ctx context.Context, cartID string, lines []model.CartItemDetail) error {
	db := r.db.WithContext(ctx)
	for _, l := range lines {
		res := db.
			Where("id = ? AND cart_id = ? AND quantity <= ?", l.ID, cartID, l.Quantity).
			Delete(&model.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			continue
		}

		err := db.Model(&model.CartItem{}).
			Where("id = ? AND cart_id = ? AND quantity > ?", l.ID, cartID, l.Quantity).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - ?", l.Quantity),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
