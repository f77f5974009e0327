package handler

import (
	"log/slog"
	"net/http"

	"foodstore/internal/domain/model"
	"foodstore/internal/middleware"
	"foodstore/internal/repository"
	"foodstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// エラーは {"message": "...", "errors": [...]} の形
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ルートごとにかけるミドルウェアを作る
type AuthMiddlewares struct {
	Parser   middleware.TokenParser
	UserRepo repository.UserRepository
}

// JWT検証 → ロール確認 → DB上で有効か確認
func (a AuthMiddlewares) For(roles ...model.Role) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.AuthJWT(a.Parser),
		middleware.RequireRoles(roles...),
		middleware.ActiveUserGuard(a.UserRepo),
	}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError && he.Err != nil {
			slog.ErrorContext(c.Request().Context(), "request failed",
				slog.String("path", c.Path()),
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.Any("error", he.Err),
			)
		}
		return c.JSON(he.Status, ErrorResponse{Message: he.Message, Errors: he.Errors})
	}

	//500
	slog.ErrorContext(c.Request().Context(), "unexpected error", slog.String("path", c.Path()), slog.Any("error", err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	return middleware.UserID(c)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
}
