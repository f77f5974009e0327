package usecase

import (
	"context"
	"time"

	"foodstore/internal/domain/model"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(user *model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// usecaseがValidatorInterfaceに依存する約束
type AccountValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, in LoginInput) error
}

// 会計完了イベントの送信先
type InvoiceEventPublisher interface {
	PublishInvoicePaid(ctx context.Context, ev model.InvoicePaidEvent) error
}
