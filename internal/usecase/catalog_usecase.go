package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogUsecase は分類と料理の管理
type CatalogUsecase struct {
	categories repo.MenuCategoryRepository
	items      repo.MenuItemRepository
	idGen      IDGenerator
	audit      *AuditUsecase
}

// DI。auditがnilなら監査ログは残さない。
func NewCatalogUsecase(categories repo.MenuCategoryRepository, items repo.MenuItemRepository, idGen IDGenerator, audit *AuditUsecase) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, items: items, idGen: idGen, audit: audit}
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type MenuItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	IsActive     bool            `json:"is_active"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Category     *CategoryDTO    `json:"category,omitempty"`
}

type CreateCategoryInput struct {
	ID          string
	Name        string
	Description string
}

type UpdateCategoryInput struct {
	Name        string
	Description string
}

// IDは空なら採番
type CreateMenuItemInput struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	ImageURL   string
	CategoryID string
}

type ToggleResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	Message  string `json:"message"`
}

// =====================
// 分類
// =====================

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in CreateCategoryInput) (CategoryDTO, error) {
	id := strings.TrimSpace(in.ID)
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" {
		return CategoryDTO{}, NewHTTPError(http.StatusBadRequest, "category id and name are required")
	}

	_, err := u.categories.FindByID(ctx, id)
	if err == nil {
		return CategoryDTO{}, NewHTTPError(http.StatusConflict, "category id already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return CategoryDTO{}, internalError("db error", err)
	}

	c := model.MenuCategory{
		ID:          id,
		Name:        name,
		Description: in.Description,
		IsActive:    true,
	}
	if err := u.categories.Create(ctx, &c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return CategoryDTO{}, NewHTTPError(http.StatusConflict, "category id already exists")
		}
		return CategoryDTO{}, internalError("db error", err)
	}
	return toCategoryDTO(c), nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (CategoryDTO, error) {
	if _, err := u.findCategory(ctx, id); err != nil {
		return CategoryDTO{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CategoryDTO{}, NewHTTPError(http.StatusBadRequest, "category name is required")
	}

	// 説明は空でも上書き
	if err := u.categories.Update(ctx, id, name, in.Description); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CategoryDTO{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return CategoryDTO{}, internalError("db error", err)
	}

	c, err := u.findCategory(ctx, id)
	if err != nil {
		return CategoryDTO{}, err
	}
	return toCategoryDTO(c), nil
}

func (u *CatalogUsecase) GetCategory(ctx context.Context, id string) (CategoryDTO, error) {
	c, err := u.findCategory(ctx, id)
	if err != nil {
		return CategoryDTO{}, err
	}
	return toCategoryDTO(c), nil
}

// 0件でも空配列
func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return []CategoryDTO{}, internalError("db error", err)
	}

	out := make([]CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryDTO(c))
	}
	return out, nil
}

func (u *CatalogUsecase) ToggleCategory(ctx context.Context, actorID string, id string) (ToggleResult, error) {
	c, err := u.findCategory(ctx, id)
	if err != nil {
		return ToggleResult{}, err
	}

	active, err := u.categories.ToggleActive(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ToggleResult{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return ToggleResult{}, internalError("db error", err)
	}

	u.audit.Record(ctx, AuditEntry{
		ActorUserID:  actorID,
		Action:       model.AuditActionToggleCategory,
		ResourceType: model.AuditResourceCategory,
		ResourceID:   c.ID,
		Before:       activeState{IsActive: c.IsActive},
		After:        activeState{IsActive: active},
	})

	return ToggleResult{
		ID:       c.ID,
		Name:     c.Name,
		IsActive: active,
		Message:  fmt.Sprintf("category '%s' has been %s", c.Name, activeWord(active)),
	}, nil
}

// 分類が無ければ404。分類はあるが料理が0件なら空配列。
func (u *CatalogUsecase) ListItemsByCategory(ctx context.Context, categoryID string) ([]MenuItemDTO, error) {
	c, err := u.findCategory(ctx, categoryID)
	if err != nil {
		return []MenuItemDTO{}, err
	}

	items, err := u.items.ListByCategory(ctx, c.ID)
	if err != nil {
		return []MenuItemDTO{}, internalError("db error", err)
	}

	out := make([]MenuItemDTO, 0, len(items))
	for _, it := range items {
		dto := toMenuItemDTO(it)
		dto.CategoryName = c.Name
		out = append(out, dto)
	}
	return out, nil
}

func (u *CatalogUsecase) findCategory(ctx context.Context, id string) (model.MenuCategory, error) {
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuCategory{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.MenuCategory{}, internalError("db error", err)
	}
	return c, nil
}

// =====================
// 料理
// =====================

func (u *CatalogUsecase) CreateItem(ctx context.Context, in CreateMenuItemInput) (MenuItemDTO, error) {
	name := strings.TrimSpace(in.Name)
	categoryID := strings.TrimSpace(in.CategoryID)
	if name == "" || !in.Price.IsPositive() || categoryID == "" {
		return MenuItemDTO{}, NewHTTPError(http.StatusBadRequest, "name, a positive price and category id are required")
	}

	c, err := u.categories.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return MenuItemDTO{}, NewHTTPError(http.StatusBadRequest, "category does not exist")
	}
	if err != nil {
		return MenuItemDTO{}, internalError("db error", err)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = u.idGen.NewID()
	} else {
		_, err := u.items.FindByID(ctx, id)
		if err == nil {
			return MenuItemDTO{}, NewHTTPError(http.StatusConflict, "menu item id already exists")
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return MenuItemDTO{}, internalError("db error", err)
		}
	}

	item := model.MenuItem{
		ID:         id,
		Name:       name,
		Price:      in.Price,
		ImageURL:   in.ImageURL,
		CategoryID: c.ID,
		IsActive:   true,
	}
	if err := u.items.Create(ctx, &item); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return MenuItemDTO{}, NewHTTPError(http.StatusConflict, "menu item id already exists")
		}
		return MenuItemDTO{}, internalError("db error", err)
	}

	item.Category = &c
	return toMenuItemDTO(item), nil
}

// 指定されたフィールドだけ変える
func (u *CatalogUsecase) UpdateItem(ctx context.Context, actorID string, id string, patch model.MenuItemPatch) (MenuItemDTO, error) {
	before, err := u.findItem(ctx, id, false)
	if err != nil {
		return MenuItemDTO{}, err
	}
	if patch.IsEmpty() {
		return MenuItemDTO{}, NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return MenuItemDTO{}, NewHTTPError(http.StatusBadRequest, "name must not be blank")
		}
		patch.Name = &trimmed
	}
	if patch.Price != nil && !patch.Price.IsPositive() {
		return MenuItemDTO{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if patch.CategoryID != nil {
		if _, err := u.findCategory(ctx, *patch.CategoryID); err != nil {
			return MenuItemDTO{}, err
		}
	}

	if err := u.items.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return MenuItemDTO{}, NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return MenuItemDTO{}, internalError("db error", err)
	}

	item, err := u.findItem(ctx, id, false)
	if err != nil {
		return MenuItemDTO{}, err
	}

	u.audit.Record(ctx, AuditEntry{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateMenuItem,
		ResourceType: model.AuditResourceMenuItem,
		ResourceID:   id,
		Before:       toMenuItemDTO(before),
		After:        toMenuItemDTO(item),
	})
	return toMenuItemDTO(item), nil
}

func (u *CatalogUsecase) ToggleItem(ctx context.Context, actorID string, id string) (ToggleResult, error) {
	item, err := u.findItem(ctx, id, false)
	if err != nil {
		return ToggleResult{}, err
	}

	active, err := u.items.ToggleActive(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ToggleResult{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return ToggleResult{}, internalError("db error", err)
	}

	u.audit.Record(ctx, AuditEntry{
		ActorUserID:  actorID,
		Action:       model.AuditActionToggleMenuItem,
		ResourceType: model.AuditResourceMenuItem,
		ResourceID:   item.ID,
		Before:       activeState{IsActive: item.IsActive},
		After:        activeState{IsActive: active},
	})

	return ToggleResult{
		ID:       item.ID,
		Name:     item.Name,
		IsActive: active,
		Message:  fmt.Sprintf("menu item '%s' has been %s", item.Name, activeWord(active)),
	}, nil
}

// activeOnlyは客向け（販売中だけ）
func (u *CatalogUsecase) ListItems(ctx context.Context, activeOnly bool) ([]MenuItemDTO, error) {
	items, err := u.items.List(ctx, activeOnly)
	if err != nil {
		return []MenuItemDTO{}, internalError("db error", err)
	}

	out := make([]MenuItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toMenuItemDTO(it))
	}
	return out, nil
}

// 分類つきの詳細
func (u *CatalogUsecase) GetItem(ctx context.Context, id string, activeOnly bool) (MenuItemDTO, error) {
	item, err := u.findItem(ctx, id, activeOnly)
	if err != nil {
		return MenuItemDTO{}, err
	}
	return toMenuItemDTO(item), nil
}

func (u *CatalogUsecase) findItem(ctx context.Context, id string, activeOnly bool) (model.MenuItem, error) {
	item, err := u.items.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, internalError("db error", err)
	}
	if activeOnly && !item.IsActive {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	return item, nil
}

// 監査ログ用
type activeState struct {
	IsActive bool `json:"is_active"`
}

func activeWord(active bool) string {
	if active {
		return "activated"
	}
	return "deactivated"
}

func toCategoryDTO(c model.MenuCategory) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

func toMenuItemDTO(it model.MenuItem) MenuItemDTO {
	dto := MenuItemDTO{
		ID:         it.ID,
		Name:       it.Name,
		Price:      it.Price,
		ImageURL:   it.ImageURL,
		IsActive:   it.IsActive,
		CategoryID: it.CategoryID,
	}
	if it.Category != nil {
		c := toCategoryDTO(*it.Category)
		dto.Category = &c
		dto.CategoryName = c.Name
	}
	return dto
}
