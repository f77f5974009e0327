package usecase

import (
	"context"
	"errors"
	"net/http"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /api/customer/cart の業務ロジックです。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	itemRepo     repo.MenuItemRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	itemRepo repo.MenuItemRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		itemRepo:     itemRepo,
	}
}

const msgCartEmpty = "cart is empty"

// unit_price は追加時点の価格
type CartLineView struct {
	LineID    string          `json:"line_id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
	Lines   []CartLineView  `json:"lines"`
	Total   decimal.Decimal `json:"total"`
}

// GetCart はカート取得（無い・空なら空のビュー）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartView, error) {
	if userID == "" {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return emptyCartView(), nil
	}
	if err != nil {
		return CartView{}, internalError("db error", err)
	}

	return u.buildCartView(ctx, cart.ID)
}

// AddItem はカートに追加（同一料理は数量+1）。
func (u *CartUsecase) AddItem(ctx context.Context, userID string, itemID string) (CartView, error) {
	if userID == "" {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 販売中の料理だけ
	item, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return CartView{}, internalError("db error", err)
	}
	if !item.IsActive {
		return CartView{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartView{}, internalError("db error", err)
	}

	if err := u.cartItemRepo.AddOrIncrement(ctx, cart.ID, item.ID, item.Price); err != nil {
		return CartView{}, internalError("db error", err)
	}

	return u.buildCartView(ctx, cart.ID)
}

// Increase は数量+1
func (u *CartUsecase) Increase(ctx context.Context, userID string, lineID string) (CartView, error) {
	line, err := u.ownedLine(ctx, userID, lineID)
	if err != nil {
		return CartView{}, err
	}

	if err := u.cartItemRepo.AdjustQuantity(ctx, line.ID, 1); err != nil {
		return CartView{}, lineWriteError(err)
	}
	return u.buildCartView(ctx, line.CartID)
}

// Decrease は数量-1。1のときは明細ごと消す。
func (u *CartUsecase) Decrease(ctx context.Context, userID string, lineID string) (CartView, error) {
	line, err := u.ownedLine(ctx, userID, lineID)
	if err != nil {
		return CartView{}, err
	}

	if line.Quantity > 1 {
		err = u.cartItemRepo.AdjustQuantity(ctx, line.ID, -1)
		// 同時に減らされて1になっていたら明細ごと消す
		if errors.Is(err, repo.ErrNotFound) {
			err = u.cartItemRepo.DeleteByID(ctx, line.ID)
		}
	} else {
		err = u.cartItemRepo.DeleteByID(ctx, line.ID)
	}
	if err != nil {
		return CartView{}, lineWriteError(err)
	}
	return u.buildCartView(ctx, line.CartID)
}

// Remove は明細削除
func (u *CartUsecase) Remove(ctx context.Context, userID string, lineID string) (CartView, error) {
	line, err := u.ownedLine(ctx, userID, lineID)
	if err != nil {
		return CartView{}, err
	}

	if err := u.cartItemRepo.DeleteByID(ctx, line.ID); err != nil {
		return CartView{}, lineWriteError(err)
	}
	return u.buildCartView(ctx, line.CartID)
}

// 他人の明細は「存在しない扱い」にする
func (u *CartUsecase) ownedLine(ctx context.Context, userID string, lineID string) (model.CartItem, error) {
	if userID == "" {
		return model.CartItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if lineID == "" {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	line, err := u.cartItemRepo.FindOwnedByUser(ctx, lineID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "cart line not found")
	}
	if err != nil {
		return model.CartItem{}, internalError("db error", err)
	}
	return line, nil
}

func lineWriteError(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "cart line not found")
	}
	return internalError("db error", err)
}

// cartIDの明細をまとめてCartViewを作る。
func (u *CartUsecase) buildCartView(ctx context.Context, cartID string) (CartView, error) {
	lines, err := u.cartItemRepo.ListDetailedByCartID(ctx, cartID)
	if err != nil {
		return CartView{}, internalError("db error", err)
	}
	if len(lines) == 0 {
		return emptyCartView(), nil
	}

	view := CartView{Lines: make([]CartLineView, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		sub := l.Subtotal()
		view.Lines = append(view.Lines, CartLineView{
			LineID:    l.ID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceSnapshot,
			Subtotal:  sub,
		})
		view.Total = view.Total.Add(sub)
	}
	return view, nil
}

func emptyCartView() CartView {
	return CartView{
		Empty:   true,
		Message: msgCartEmpty,
		Lines:   []CartLineView{},
		Total:   decimal.Zero,
	}
}
