package repository

import (
	"context"
	"time"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

var _ repo.CartRepository = (*CartGormRepository)(nil)

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error) {
	now := time.Now()
	newCart := model.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 同時に作られてもuser_idのunique indexで1つになる
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&newCart).Error; err != nil {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, userID)
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, translateError(err)
	}
	return cart, nil
}

func (r *CartGormRepository) Create(ctx context.Context, cart *model.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	return translateError(r.db.WithContext(ctx).Create(cart).Error)
}

// 行ロック
func (r *CartGormRepository) LockByID(ctx context.Context, cartID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, translateError(err)
	}
	return cart, nil
}

// versionのcompare-and-set
func (r *CartGormRepository) BumpVersion(ctx context.Context, cartID string, expected int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND version = ?", cartID, expected).
		Updates(map[string]interface{}{
			"version":    gorm.Expr("version + ?", 1),
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrStaleVersion
	}
	return nil
}
