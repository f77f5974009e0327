package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"foodstore/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンが有効でも、DB上で停止・削除されたユーザーは通さない。
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			ctx := c.Request().Context()
			user, err := userRepo.FindByID(ctx, userID)
			if errors.Is(err, repository.ErrUserNotFound) || (err == nil && user == nil) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			// DB障害はトークンの問題ではない
			if err != nil {
				slog.ErrorContext(ctx, "active user lookup failed",
					slog.String("component", "middleware"),
					slog.String("user_id", userID),
					slog.Any("error", err),
				)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("account is locked"))
			}

			return next(c)
		}
	}
}
