package repository

import (
	"context"
	"errors"

	"foodstore/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複はErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 指定ロールのユーザー一覧
	ListByRoles(ctx context.Context, roles ...model.Role) ([]model.User, error)
	// is_activeを反転して新しい値を返す
	ToggleActive(ctx context.Context, userID string) (bool, error)
}

// rolesテーブル
type RoleRepository interface {
	EnsureRoles(ctx context.Context, roles []model.Role) error
}
