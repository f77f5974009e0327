package auth

import (
	"errors"
	"fmt"
	"time"

	"foodstore/internal/config"
	"foodstore/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// アクセストークンの中身。roleは表示名（Customer/Staff/Administrator）。
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// roleクレームをmodel.Roleに戻す
func (c *Claims) UserRole() (model.Role, bool) {
	return model.ParseRole(c.Role)
}

// JWTIssuer はHS256で署名・検証する
type JWTIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// DI
func NewJWTIssuer(cfg config.Config) *JWTIssuer {
	return &JWTIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      cfg.JWTExpire,
	}
}

// Issue はユーザーのアクセストークンを発行する
func (i *JWTIssuer) Issue(user *model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := &Claims{
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.RoleID.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse は署名・期限・iss・audを検証してClaimsを返す
func (i *JWTIssuer) Parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	if _, ok := c.UserRole(); !ok {
		return nil, ErrInvalidToken
	}
	return c, nil
}
