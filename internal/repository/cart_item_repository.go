package repository

import (
	"context"

	"foodstore/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	// 料理名つきで一覧
	ListDetailedByCartID(ctx context.Context, cartID string) ([]model.CartItemDetail, error)
	// 同一料理は数量+1（価格はそのまま）、無ければ数量1で作成
	AddOrIncrement(ctx context.Context, cartID string, itemID string, unitPrice decimal.Decimal) error
	// 明細がuserのカートのものであれば返す。違えばErrNotFound。
	FindOwnedByUser(ctx context.Context, lineID string, userID string) (model.CartItem, error)
	// 数量をdeltaだけ増減（DB側で加算）。結果が1未満になる場合やlineが無い場合はErrNotFound。
	AdjustQuantity(ctx context.Context, lineID string, delta int64) error
	DeleteByID(ctx context.Context, lineID string) error
	// 会計した分だけカートから外す。読んだ後に増えた数量や追加された明細は残る。
	RemoveCheckedOut(ctx context.Context, cartID string, lines []model.CartItemDetail) error
}
