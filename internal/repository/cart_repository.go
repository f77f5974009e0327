package repository

import (
	"context"

	"foodstore/internal/domain/model"
)

type CartRepository interface {
	// 無ければ作る（ON CONFLICT (user_id) DO NOTHING）
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	Create(ctx context.Context, cart *model.Cart) error
	// SELECT ... FOR UPDATE。Tx内でだけ使う。
	LockByID(ctx context.Context, cartID string) (model.Cart, error)
	// versionがexpectedのときだけ+1。違えばErrStaleVersion。
	BumpVersion(ctx context.Context, cartID string, expected int64) error
}
