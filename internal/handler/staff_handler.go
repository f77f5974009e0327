package handler

import (
	"net/http"

	"foodstore/internal/domain/model"
	"foodstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /api/staff のHTTP（分類・料理の管理）
type StaffHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewStaffHandler(uc *usecase.CatalogUsecase) *StaffHandler {
	return &StaffHandler{uc: uc}
}

type CategoryRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateMenuItemRequest struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url"`
	CategoryID string          `json:"category_id"`
}

// 送られたフィールドだけ更新する
type UpdateMenuItemRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	ImageURL   *string          `json:"image_url"`
	CategoryID *string          `json:"category_id"`
}

func (h *StaffHandler) RegisterRoutes(api *echo.Group, mw AuthMiddlewares) {
	g := api.Group("/staff", mw.For(model.RoleStaff)...)

	g.POST("/them-loai", h.createCategory)
	g.PUT("/update-loai/:id", h.updateCategory)
	g.GET("/get-loai", h.listCategories)
	g.GET("/get-loai/:id", h.getCategory)
	g.GET("/get-mon-theo-loai/:categoryId", h.listItemsByCategory)
	g.PUT("/toggle-loai/:id", h.toggleCategory)

	g.GET("/get-mon", h.listItems)
	g.GET("/get-mon/:id", h.getItem)
	g.POST("/them-mon", h.createItem)
	g.PUT("/update-mon/:id", h.updateItem)
	g.PUT("/toggle-mon/:id", h.toggleItem)
}

// =====================
// 分類
// =====================

func (h *StaffHandler) createCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StaffHandler) updateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.UpdateCategory(c.Request().Context(), c.Param("id"), usecase.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) getCategory(c echo.Context) error {
	out, err := h.uc.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) listItemsByCategory(c echo.Context) error {
	out, err := h.uc.ListItemsByCategory(c.Request().Context(), c.Param("categoryId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) toggleCategory(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ToggleCategory(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// =====================
// 料理
// =====================

// スタッフは停止中の料理も見える
func (h *StaffHandler) listItems(c echo.Context) error {
	out, err := h.uc.ListItems(c.Request().Context(), false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) getItem(c echo.Context) error {
	out, err := h.uc.GetItem(c.Request().Context(), c.Param("id"), false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) createItem(c echo.Context) error {
	var req CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.CreateItem(c.Request().Context(), usecase.CreateMenuItemInput{
		ID:         req.ID,
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StaffHandler) updateItem(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), actorID, c.Param("id"), model.MenuItemPatch{
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) toggleItem(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ToggleItem(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
