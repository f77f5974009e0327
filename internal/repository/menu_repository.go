package repository

import (
	"context"

	"foodstore/internal/domain/model"
)

type MenuCategoryRepository interface {
	Create(ctx context.Context, c *model.MenuCategory) error
	FindByID(ctx context.Context, id string) (model.MenuCategory, error)
	Update(ctx context.Context, id string, name string, description string) error
	List(ctx context.Context) ([]model.MenuCategory, error)
	// 反転後の値を返す
	ToggleActive(ctx context.Context, id string) (bool, error)
}

type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	// Categoryもpreloadする
	FindByID(ctx context.Context, id string) (model.MenuItem, error)
	List(ctx context.Context, activeOnly bool) ([]model.MenuItem, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.MenuItem, error)
	// nilのフィールドは更新しない
	Update(ctx context.Context, id string, patch model.MenuItemPatch) error
	ToggleActive(ctx context.Context, id string) (bool, error)
}
