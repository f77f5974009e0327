package repository

import (
	"context"
	"time"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

var _ repo.MenuItemRepository = (*MenuItemGormRepository)(nil)

// 料理の作成
func (r *MenuItemGormRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return translateError(r.db.WithContext(ctx).Omit("Category").Create(item).Error)
}

// IDで料理を取得（分類つき）
func (r *MenuItemGormRepository) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return model.MenuItem{}, translateError(err)
	}
	return item, nil
}

// 料理一覧。activeOnlyなら販売中だけ。
func (r *MenuItemGormRepository) List(ctx context.Context, activeOnly bool) ([]model.MenuItem, error) {
	var items []model.MenuItem

	tx := r.db.WithContext(ctx).Preload("Category").Model(&model.MenuItem{})
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if err := tx.Order("name asc").Order("id asc").Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) ListByCategory(ctx context.Context, categoryID string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name asc").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

// 指定されたフィールドだけ更新
func (r *MenuItemGormRepository) Update(ctx context.Context, id string, patch model.MenuItemPatch) error {
	values := map[string]interface{}{"updated_at": time.Now()}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.Price != nil {
		values["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		values["image_url"] = *patch.ImageURL
	}
	if patch.CategoryID != nil {
		values["category_id"] = *patch.CategoryID
	}

	res := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// is_activeを反転
func (r *MenuItemGormRepository) ToggleActive(ctx context.Context, id string) (bool, error) {
	var item model.MenuItem

	res := r.db.WithContext(ctx).
		Model(&item).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "is_active"}}}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, repo.ErrNotFound
	}
	return item.IsActive, nil
}
