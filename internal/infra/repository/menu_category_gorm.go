package repository

import (
	"context"
	"time"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuCategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuCategoryGormRepository(db *gorm.DB) *MenuCategoryGormRepository {
	return &MenuCategoryGormRepository{db: db}
}

var _ repo.MenuCategoryRepository = (*MenuCategoryGormRepository)(nil)

// 分類の作成（id重複はErrDuplicate）
func (r *MenuCategoryGormRepository) Create(ctx context.Context, c *model.MenuCategory) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *MenuCategoryGormRepository) FindByID(ctx context.Context, id string) (model.MenuCategory, error) {
	var c model.MenuCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return model.MenuCategory{}, translateError(err)
	}
	return c, nil
}

// 名前と説明を上書き（説明は空でもよい）
func (r *MenuCategoryGormRepository) Update(ctx context.Context, id string, name string, description string) error {
	res := r.db.WithContext(ctx).
		Model(&model.MenuCategory{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuCategoryGormRepository) List(ctx context.Context) ([]model.MenuCategory, error) {
	var cs []model.MenuCategory
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error; err != nil {
		return []model.MenuCategory{}, err
	}
	return cs, nil
}

// is_activeを反転
func (r *MenuCategoryGormRepository) ToggleActive(ctx context.Context, id string) (bool, error) {
	var c model.MenuCategory

	res := r.db.WithContext(ctx).
		Model(&c).
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
	return c.IsActive, nil
}
