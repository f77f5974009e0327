package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"foodstore/internal/domain/model"
	"foodstore/internal/repository"
	"foodstore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartDeps struct {
	carts *MockCartRepo
	lines *MockCartItemRepo
	items *MockMenuItemRepo
	uc    *usecase.CartUsecase
}

func newCartDeps() cartDeps {
	d := cartDeps{
		carts: new(MockCartRepo),
		lines: new(MockCartItemRepo),
		items: new(MockMenuItemRepo),
	}
	d.uc = usecase.NewCartUsecase(d.carts, d.lines, d.items)
	return d
}

func TestGetCart_NoCartIsEmptyView(t *testing.T) {
	d := newCartDeps()
	d.carts.On("FindByUserID", mock.Anything, "u-1").Return(model.Cart{}, repository.ErrNotFound)

	view, err := d.uc.GetCart(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, "cart is empty", view.Message)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
}

func TestGetCart_TotalsSubtotals(t *testing.T) {
	d := newCartDeps()
	d.carts.On("FindByUserID", mock.Anything, "u-1").Return(model.Cart{ID: "c-1", UserID: "u-1"}, nil)
	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{
		{ID: "l-1", CartID: "c-1", ItemID: "x", ItemName: "X", Quantity: 2, UnitPriceSnapshot: dec("10")},
		{ID: "l-2", CartID: "c-1", ItemID: "y", ItemName: "Y", Quantity: 1, UnitPriceSnapshot: dec("5")},
	}, nil)

	view, err := d.uc.GetCart(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.False(t, view.Empty)
	assert.True(t, view.Lines[0].Subtotal.Equal(dec("20")))
	assert.True(t, view.Lines[1].Subtotal.Equal(dec("5")))
	assert.True(t, view.Total.Equal(dec("25")))
}

func TestAddItem_SameItemTwiceKeepsFirstPrice(t *testing.T) {
	d := newCartDeps()
	ctx := context.Background()

	item := model.MenuItem{ID: "x", Name: "X", Price: dec("10"), IsActive: true}
	cart := model.Cart{ID: "c-1", UserID: "u-1"}

	d.items.On("FindByID", mock.Anything, "x").Return(item, nil)
	d.carts.On("GetOrCreateByUserID", mock.Anything, "u-1").Return(cart, nil)
	d.lines.On("AddOrIncrement", mock.Anything, "c-1", "x", mock.MatchedBy(func(p decimal.Decimal) bool {
		return p.Equal(dec("10"))
	})).Return(nil).Twice()

	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{
		{ID: "l-1", CartID: "c-1", ItemID: "x", ItemName: "X", Quantity: 1, UnitPriceSnapshot: dec("10")},
	}, nil).Once()
	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{
		{ID: "l-1", CartID: "c-1", ItemID: "x", ItemName: "X", Quantity: 2, UnitPriceSnapshot: dec("10")},
	}, nil).Once()

	_, err := d.uc.AddItem(ctx, "u-1", "x")
	require.NoError(t, err)
	view, err := d.uc.AddItem(ctx, "u-1", "x")
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(2), view.Lines[0].Quantity)
	assert.True(t, view.Lines[0].UnitPrice.Equal(dec("10")))
	d.lines.AssertExpectations(t)
}

func TestAddItem_InactiveOrMissingIsNotFound(t *testing.T) {
	d := newCartDeps()
	d.items.On("FindByID", mock.Anything, "off").Return(model.MenuItem{ID: "off", IsActive: false}, nil)
	d.items.On("FindByID", mock.Anything, "nope").Return(model.MenuItem{}, repository.ErrNotFound)

	_, err := d.uc.AddItem(context.Background(), "u-1", "off")
	requireHTTPError(t, err, http.StatusNotFound, "menu item not found")

	_, err = d.uc.AddItem(context.Background(), "u-1", "nope")
	requireHTTPError(t, err, http.StatusNotFound, "menu item not found")

	d.carts.AssertNotCalled(t, "GetOrCreateByUserID", mock.Anything, mock.Anything)
}

func TestIncrease_AddsOne(t *testing.T) {
	d := newCartDeps()
	d.lines.On("FindOwnedByUser", mock.Anything, "l-1", "u-1").Return(model.CartItem{ID: "l-1", CartID: "c-1", Quantity: 3}, nil)
	d.lines.On("AdjustQuantity", mock.Anything, "l-1", int64(1)).Return(nil).Once()
	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{}, nil)

	_, err := d.uc.Increase(context.Background(), "u-1", "l-1")
	require.NoError(t, err)
	d.lines.AssertExpectations(t)
}

func TestDecrease_AtNGoesToNMinusOne(t *testing.T) {
	d := newCartDeps()
	d.lines.On("FindOwnedByUser", mock.Anything, "l-1", "u-1").Return(model.CartItem{ID: "l-1", CartID: "c-1", Quantity: 3}, nil)
	d.lines.On("AdjustQuantity", mock.Anything, "l-1", int64(-1)).Return(nil).Once()
	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{
		{ID: "l-1", CartID: "c-1", ItemID: "x", ItemName: "X", Quantity: 2, UnitPriceSnapshot: dec("10")},
	}, nil)

	view, err := d.uc.Decrease(context.Background(), "u-1", "l-1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(2), view.Lines[0].Quantity)
	d.lines.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestDecrease_AtOneRemovesLine(t *testing.T) {
	d := newCartDeps()
	d.lines.On("FindOwnedByUser", mock.Anything, "l-1", "u-1").Return(model.CartItem{ID: "l-1", CartID: "c-1", Quantity: 1}, nil)
	d.lines.On("DeleteByID", mock.Anything, "l-1").Return(nil).Once()
	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{}, nil)

	view, err := d.uc.Decrease(context.Background(), "u-1", "l-1")
	require.NoError(t, err)
	assert.True(t, view.Empty)
	d.lines.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything)
	d.lines.AssertExpectations(t)
}

// 読んだ後に別リクエストが1まで減らしていたら明細ごと消す
func TestDecrease_ConcurrentDropToOneRemovesLine(t *testing.T) {
	d := newCartDeps()
	d.lines.On("FindOwnedByUser", mock.Anything, "l-1", "u-1").Return(model.CartItem{ID: "l-1", CartID: "c-1", Quantity: 2}, nil)
	d.lines.On("AdjustQuantity", mock.Anything, "l-1", int64(-1)).Return(repository.ErrNotFound).Once()
	d.lines.On("DeleteByID", mock.Anything, "l-1").Return(nil).Once()
	d.lines.On("ListDetailedByCartID", mock.Anything, "c-1").Return([]model.CartItemDetail{}, nil)

	view, err := d.uc.Decrease(context.Background(), "u-1", "l-1")
	require.NoError(t, err)
	assert.True(t, view.Empty)
	d.lines.AssertExpectations(t)
}

func TestRemove_OtherUsersLineIsNotFound(t *testing.T) {
	d := newCartDeps()
	d.lines.On("FindOwnedByUser", mock.Anything, "l-9", "u-1").Return(model.CartItem{}, repository.ErrNotFound)

	_, err := d.uc.Remove(context.Background(), "u-1", "l-9")
	requireHTTPError(t, err, http.StatusNotFound, "cart line not found")
	d.lines.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestRemove_DBError(t *testing.T) {
	d := newCartDeps()
	d.lines.On("FindOwnedByUser", mock.Anything, "l-1", "u-1").Return(model.CartItem{ID: "l-1", CartID: "c-1", Quantity: 1}, nil)
	d.lines.On("DeleteByID", mock.Anything, "l-1").Return(errors.New("db down"))

	_, err := d.uc.Remove(context.Background(), "u-1", "l-1")
	requireHTTPError(t, err, http.StatusInternalServerError, "")
}
