package handler

import (
	"net/http"

	"foodstore/internal/domain/model"
	"foodstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/customer のHTTP（カート・注文・メニュー閲覧）
type CustomerHandler struct {
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
	catalog  *usecase.CatalogUsecase
}

// DI
func NewCustomerHandler(
	cart *usecase.CartUsecase,
	checkout *usecase.CheckoutUsecase,
	orders *usecase.OrderUsecase,
	catalog *usecase.CatalogUsecase,
) *CustomerHandler {
	return &CustomerHandler{cart: cart, checkout: checkout, orders: orders, catalog: catalog}
}

func (h *CustomerHandler) RegisterRoutes(api *echo.Group, mw AuthMiddlewares) {
	g := api.Group("/customer", mw.For(model.RoleCustomer)...)

	g.GET("/cart", h.getCart)
	g.POST("/cart/:itemId", h.addToCart)
	g.PUT("/cart/increase/:lineId", h.increase)
	g.PUT("/cart/decrease/:lineId", h.decrease)
	g.DELETE("/cart/:lineId", h.remove)
	g.POST("/checkout", h.placeOrder)

	g.GET("/get-mon", h.listMenu)
	g.GET("/get-mon/:id", h.getMenuItem)
	g.GET("/order/:invoiceId", h.getInvoice)
	g.GET("/orders", h.listOrders)
}

func (h *CustomerHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.cart.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) addToCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.cart.AddItem(c.Request().Context(), userID, c.Param("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) increase(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.cart.Increase(c.Request().Context(), userID, c.Param("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) decrease(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.cart.Decrease(c.Request().Context(), userID, c.Param("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.cart.Remove(c.Request().Context(), userID, c.Param("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 注文確定
func (h *CustomerHandler) placeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.checkout.Checkout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 顧客には販売中のものだけ見せる
func (h *CustomerHandler) listMenu(c echo.Context) error {
	out, err := h.catalog.ListItems(c.Request().Context(), true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) getMenuItem(c echo.Context) error {
	out, err := h.catalog.GetItem(c.Request().Context(), c.Param("id"), true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) getInvoice(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.orders.GetInvoice(c.Request().Context(), userID, c.Param("invoiceId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) listOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.orders.ListHistory(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
