package repository

import (
	"context"
	"errors"
	"time"

	"foodstore/internal/domain/model"
	domainrepo "foodstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// 指定ロールのユーザー一覧
func (r *userGormRepository) ListByRoles(ctx context.Context, roles ...model.Role) ([]model.User, error) {
	var users []model.User
	if len(roles) == 0 {
		return []model.User{}, nil
	}

	err := r.db.WithContext(ctx).
		Where("role_id IN ?", roles).
		Order("created_at asc").
		Find(&users).Error
	if err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// is_activeを反転（物理削除はしない）
func (r *userGormRepository) ToggleActive(ctx context.Context, id string) (bool, error) {
	var u model.User

	res := r.db.WithContext(ctx).
		Model(&u).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "is_active"}}}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return false, domainrepo.ErrUserNotFound
	}
	return u.IsActive, nil
}

type RoleGormRepository struct {
	db *gorm.DB
}

// DI
func NewRoleGormRepository(db *gorm.DB) *RoleGormRepository {
	return &RoleGormRepository{db: db}
}

// 無いロールだけ入れる
func (r *RoleGormRepository) EnsureRoles(ctx context.Context, roles []model.Role) error {
	if len(roles) == 0 {
		return nil
	}

	records := make([]model.RoleRecord, 0, len(roles))
	for _, role := range roles {
		records = append(records, model.RoleRecord{ID: role.Code(), Name: role.DisplayName()})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records).Error
}
