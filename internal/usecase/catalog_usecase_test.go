package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"foodstore/internal/domain/model"
	"foodstore/internal/logger"
	"foodstore/internal/repository"
	"foodstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogDeps struct {
	categories *MockCategoryRepo
	items      *MockMenuItemRepo
	audits     *MockAuditRepo
	uc         *usecase.CatalogUsecase
}

func newCatalogDeps() catalogDeps {
	d := catalogDeps{
		categories: new(MockCategoryRepo),
		items:      new(MockMenuItemRepo),
		audits:     new(MockAuditRepo),
	}
	audit := usecase.NewAuditUsecase(d.audits, fixedClock{now: testNow}, logger.Discard())
	d.uc = usecase.NewCatalogUsecase(d.categories, d.items, &seqID{}, audit)
	return d
}

func TestCreateCategory_DuplicateID(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "drinks").Return(model.MenuCategory{ID: "drinks"}, nil)

	_, err := d.uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{ID: "drinks", Name: "Drinks"})
	requireHTTPError(t, err, http.StatusConflict, "category id already exists")
	d.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_OK(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "drinks").Return(model.MenuCategory{}, repository.ErrNotFound)
	d.categories.On("Create", mock.Anything, mock.MatchedBy(func(c *model.MenuCategory) bool {
		return c.ID == "drinks" && c.Name == "Drinks" && c.IsActive
	})).Return(nil)

	got, err := d.uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{ID: " drinks ", Name: " Drinks "})
	require.NoError(t, err)
	assert.Equal(t, "drinks", got.ID)
	assert.True(t, got.IsActive)
}

func TestListItemsByCategory_EmptyIsArrayMissingIs404(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "drinks").Return(model.MenuCategory{ID: "drinks", Name: "Drinks"}, nil)
	d.categories.On("FindByID", mock.Anything, "nope").Return(model.MenuCategory{}, repository.ErrNotFound)
	d.items.On("ListByCategory", mock.Anything, "drinks").Return([]model.MenuItem{}, nil)

	got, err := d.uc.ListItemsByCategory(context.Background(), "drinks")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = d.uc.ListItemsByCategory(context.Background(), "nope")
	requireHTTPError(t, err, http.StatusNotFound, "category not found")
}

func TestCreateItem_Validation(t *testing.T) {
	d := newCatalogDeps()

	_, err := d.uc.CreateItem(context.Background(), usecase.CreateMenuItemInput{Name: "Pho", Price: dec("0"), CategoryID: "noodle"})
	requireHTTPError(t, err, http.StatusBadRequest, "")

	d.categories.On("FindByID", mock.Anything, "ghost").Return(model.MenuCategory{}, repository.ErrNotFound)
	_, err = d.uc.CreateItem(context.Background(), usecase.CreateMenuItemInput{Name: "Pho", Price: dec("10"), CategoryID: "ghost"})
	requireHTTPError(t, err, http.StatusBadRequest, "category does not exist")
}

func TestCreateItem_GeneratesID(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "noodle").Return(model.MenuCategory{ID: "noodle", Name: "Noodle", IsActive: true}, nil)
	d.items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.MenuItem) bool {
		return it.ID == "id-1" && it.IsActive && it.Price.Equal(dec("45000"))
	})).Return(nil)

	got, err := d.uc.CreateItem(context.Background(), usecase.CreateMenuItemInput{Name: "Pho", Price: dec("45000"), CategoryID: "noodle"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Noodle", got.CategoryName)
}

func TestUpdateItem_MissingIs404EmptyPatchIs400(t *testing.T) {
	d := newCatalogDeps()
	d.items.On("FindByID", mock.Anything, "ghost").Return(model.MenuItem{}, repository.ErrNotFound)
	d.items.On("FindByID", mock.Anything, "pho").Return(model.MenuItem{ID: "pho", Name: "Pho"}, nil)

	name := "New"
	_, err := d.uc.UpdateItem(context.Background(), "staff-1", "ghost", model.MenuItemPatch{Name: &name})
	requireHTTPError(t, err, http.StatusNotFound, "menu item not found")

	_, err = d.uc.UpdateItem(context.Background(), "staff-1", "pho", model.MenuItemPatch{})
	requireHTTPError(t, err, http.StatusBadRequest, "no fields to update")

	d.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleItem_TwiceRestoresState(t *testing.T) {
	d := newCatalogDeps()
	d.items.On("FindByID", mock.Anything, "pho").Return(model.MenuItem{ID: "pho", Name: "Pho", IsActive: true}, nil).Once()
	d.items.On("ToggleActive", mock.Anything, "pho").Return(false, nil).Once()
	d.items.On("FindByID", mock.Anything, "pho").Return(model.MenuItem{ID: "pho", Name: "Pho", IsActive: false}, nil).Once()
	d.items.On("ToggleActive", mock.Anything, "pho").Return(true, nil).Once()
	d.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionToggleMenuItem && l.ActorUserID == "staff-1" && l.ResourceID == "pho"
	})).Return(nil).Twice()

	first, err := d.uc.ToggleItem(context.Background(), "staff-1", "pho")
	require.NoError(t, err)
	assert.False(t, first.IsActive)
	assert.Equal(t, "menu item 'Pho' has been deactivated", first.Message)

	second, err := d.uc.ToggleItem(context.Background(), "staff-1", "pho")
	require.NoError(t, err)
	assert.True(t, second.IsActive)
	assert.Equal(t, "menu item 'Pho' has been activated", second.Message)

	d.items.AssertExpectations(t)
	d.audits.AssertExpectations(t)
}

func TestToggleCategory_Message(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "drinks").Return(model.MenuCategory{ID: "drinks", Name: "Drinks", IsActive: false}, nil)
	d.categories.On("ToggleActive", mock.Anything, "drinks").Return(true, nil)
	d.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.BeforeJSON == `{"is_active":false}` && l.AfterJSON == `{"is_active":true}`
	})).Return(nil)

	got, err := d.uc.ToggleCategory(context.Background(), "staff-1", "drinks")
	require.NoError(t, err)
	assert.Equal(t, "category 'Drinks' has been activated", got.Message)
	d.audits.AssertExpectations(t)
}

func TestGetItem_ActiveOnlyHidesInactive(t *testing.T) {
	d := newCatalogDeps()
	d.items.On("FindByID", mock.Anything, "pho").Return(model.MenuItem{ID: "pho", Name: "Pho", IsActive: false}, nil)

	_, err := d.uc.GetItem(context.Background(), "pho", true)
	requireHTTPError(t, err, http.StatusNotFound, "menu item not found")

	got, err := d.uc.GetItem(context.Background(), "pho", false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCreateCategory_BlankIDOrName(t *testing.T) {
	d := newCatalogDeps()

	_, err := d.uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{ID: "  ", Name: "Drinks"})
	requireHTTPError(t, err, http.StatusBadRequest, "category id and name are required")

	_, err = d.uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{ID: "drinks", Name: " "})
	requireHTTPError(t, err, http.StatusBadRequest, "category id and name are required")

	d.categories.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	d.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCategory_MissingIs404(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "ghost").Return(model.MenuCategory{}, repository.ErrNotFound)

	_, err := d.uc.UpdateCategory(context.Background(), "ghost", usecase.UpdateCategoryInput{Name: "Drinks"})
	requireHTTPError(t, err, http.StatusNotFound, "category not found")
	d.categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCategory_BlankNameIs400(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "drinks").Return(model.MenuCategory{ID: "drinks", Name: "Drinks"}, nil)

	_, err := d.uc.UpdateCategory(context.Background(), "drinks", usecase.UpdateCategoryInput{Name: "   ", Description: "cold"})
	requireHTTPError(t, err, http.StatusBadRequest, "category name is required")
	d.categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 説明は空文字でも上書きされる
func TestUpdateCategory_BlankDescriptionOverwrites(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "drinks").
		Return(model.MenuCategory{ID: "drinks", Name: "Drinks", Description: "cold drinks", IsActive: true}, nil).Once()
	d.categories.On("Update", mock.Anything, "drinks", "Beverages", "").Return(nil).Once()
	d.categories.On("FindByID", mock.Anything, "drinks").
		Return(model.MenuCategory{ID: "drinks", Name: "Beverages", Description: "", IsActive: true}, nil).Once()

	got, err := d.uc.UpdateCategory(context.Background(), "drinks", usecase.UpdateCategoryInput{Name: " Beverages ", Description: ""})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", got.Name)
	assert.Equal(t, "", got.Description)
	d.categories.AssertExpectations(t)
}

func TestUpdateItem_RejectsBadFields(t *testing.T) {
	d := newCatalogDeps()
	d.items.On("FindByID", mock.Anything, "pho").Return(model.MenuItem{ID: "pho", Name: "Pho", Price: dec("45000"), CategoryID: "noodle"}, nil)
	d.categories.On("FindByID", mock.Anything, "ghost").Return(model.MenuCategory{}, repository.ErrNotFound)

	blank := "  "
	_, err := d.uc.UpdateItem(context.Background(), "staff-1", "pho", model.MenuItemPatch{Name: &blank})
	requireHTTPError(t, err, http.StatusBadRequest, "name must not be blank")

	zero := dec("0")
	_, err = d.uc.UpdateItem(context.Background(), "staff-1", "pho", model.MenuItemPatch{Price: &zero})
	requireHTTPError(t, err, http.StatusBadRequest, "price must be positive")

	negative := dec("-1")
	_, err = d.uc.UpdateItem(context.Background(), "staff-1", "pho", model.MenuItemPatch{Price: &negative})
	requireHTTPError(t, err, http.StatusBadRequest, "price must be positive")

	ghost := "ghost"
	_, err = d.uc.UpdateItem(context.Background(), "staff-1", "pho", model.MenuItemPatch{CategoryID: &ghost})
	requireHTTPError(t, err, http.StatusNotFound, "category not found")

	d.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	d.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestToggleCategory_MissingIs404(t *testing.T) {
	d := newCatalogDeps()
	d.categories.On("FindByID", mock.Anything, "ghost").Return(model.MenuCategory{}, repository.ErrNotFound)

	_, err := d.uc.ToggleCategory(context.Background(), "staff-1", "ghost")
	requireHTTPError(t, err, http.StatusNotFound, "category not found")

	d.categories.AssertNotCalled(t, "ToggleActive", mock.Anything, mock.Anything)
	d.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
