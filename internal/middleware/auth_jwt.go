package middleware

import (
	"net/http"
	"strings"

	"foodstore/internal/auth"
	"foodstore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey    = "user_id"    // string
	CtxUserRoleKey  = "user_role"  // model.Role
	CtxUserEmailKey = "user_email" // string
)

// TokenParser はJWTを検証してClaimsを返す
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//署名・期限・iss・audを検証する
			claims, err := parser.Parse(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			role, ok := claims.UserRole()
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.Subject)
			c.Set(CtxUserRoleKey, role)
			c.Set(CtxUserEmailKey, claims.Email)

			return next(c)
		}
	}
}

// UserID はAuthJWTが入れたユーザーID
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// UserRole はAuthJWTが入れたロール
func UserRole(c echo.Context) (model.Role, bool) {
	role, ok := c.Get(CtxUserRoleKey).(model.Role)
	if !ok || role == model.RoleUnknown {
		return model.RoleUnknown, false
	}
	return role, true
}

type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Message: msg}
}
