package server

import (
	"net/http"

	"foodstore/internal/handler"

	"github.com/labstack/echo/v4"
)

// RouteRegistrar は /api 配下にルートを持つハンドラ
type RouteRegistrar interface {
	RegisterRoutes(api *echo.Group, mw handler.AuthMiddlewares)
}

// RegisterRoutes は /healthz と /api 以下をまとめて登録する
func RegisterRoutes(e *echo.Echo, mw handler.AuthMiddlewares, handlers ...RouteRegistrar) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.MessageResponse{Message: "ok"})
	})

	api := e.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api, mw)
	}
}
