package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"foodstore/internal/domain/model"
	"foodstore/internal/repository"
	"foodstore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Repositoryモック
// =====================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) ListByRoles(ctx context.Context, roles ...model.Role) ([]model.User, error) {
	args := m.Called(ctx, roles)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *MockUserRepo) ToggleActive(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepo) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepo) Create(ctx context.Context, cart *model.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *MockCartRepo) LockByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepo) BumpVersion(ctx context.Context, cartID string, expected int64) error {
	return m.Called(ctx, cartID, expected).Error(0)
}

var _ repository.CartRepository = (*MockCartRepo)(nil)

type MockCartItemRepo struct {
	mock.Mock
}

func (m *MockCartItemRepo) ListDetailedByCartID(ctx context.Context, cartID string) ([]model.CartItemDetail, error) {
	args := m.Called(ctx, cartID)
	ls, _ := args.Get(0).([]model.CartItemDetail)
	return ls, args.Error(1)
}

func (m *MockCartItemRepo) AddOrIncrement(ctx context.Context, cartID string, itemID string, unitPrice decimal.Decimal) error {
	return m.Called(ctx, cartID, itemID, unitPrice).Error(0)
}

func (m *MockCartItemRepo) FindOwnedByUser(ctx context.Context, lineID string, userID string) (model.CartItem, error) {
	args := m.Called(ctx, lineID, userID)
	l, _ := args.Get(0).(model.CartItem)
	return l, args.Error(1)
}

func (m *MockCartItemRepo) AdjustQuantity(ctx context.Context, lineID string, delta int64) error {
	return m.Called(ctx, lineID, delta).Error(0)
}

func (m *MockCartItemRepo) DeleteByID(ctx context.Context, lineID string) error {
	return m.Called(ctx, lineID).Error(0)
}

func (m *MockCartItemRepo) RemoveCheckedOut(ctx context.Context, cartID string, lines []model.CartItemDetail) error {
	return m.Called(ctx, cartID, lines).Error(0)
}

var _ repository.CartItemRepository = (*MockCartItemRepo)(nil)

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *model.MenuCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepo) FindByID(ctx context.Context, id string) (model.MenuCategory, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.MenuCategory)
	return c, args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, id string, name string, description string) error {
	return m.Called(ctx, id, name, description).Error(0)
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]model.MenuCategory, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.MenuCategory)
	return cs, args.Error(1)
}

func (m *MockCategoryRepo) ToggleActive(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repository.MenuCategoryRepository = (*MockCategoryRepo)(nil)

type MockMenuItemRepo struct {
	mock.Mock
}

func (m *MockMenuItemRepo) Create(ctx context.Context, item *model.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMenuItemRepo) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

func (m *MockMenuItemRepo) List(ctx context.Context, activeOnly bool) ([]model.MenuItem, error) {
	args := m.Called(ctx, activeOnly)
	its, _ := args.Get(0).([]model.MenuItem)
	return its, args.Error(1)
}

func (m *MockMenuItemRepo) ListByCategory(ctx context.Context, categoryID string) ([]model.MenuItem, error) {
	args := m.Called(ctx, categoryID)
	its, _ := args.Get(0).([]model.MenuItem)
	return its, args.Error(1)
}

func (m *MockMenuItemRepo) Update(ctx context.Context, id string, patch model.MenuItemPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockMenuItemRepo) ToggleActive(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repository.MenuItemRepository = (*MockMenuItemRepo)(nil)

type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepo) FindByIDForUser(ctx context.Context, invoiceID string, userID string) (model.Invoice, error) {
	args := m.Called(ctx, invoiceID, userID)
	inv, _ := args.Get(0).(model.Invoice)
	return inv, args.Error(1)
}

var _ repository.InvoiceRepository = (*MockInvoiceRepo)(nil)

type MockInvoiceLineRepo struct {
	mock.Mock
}

func (m *MockInvoiceLineRepo) CreateBulk(ctx context.Context, invoiceID string, lines []model.InvoiceLine) error {
	return m.Called(ctx, invoiceID, lines).Error(0)
}

func (m *MockInvoiceLineRepo) ListByInvoiceID(ctx context.Context, invoiceID string) ([]model.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	ls, _ := args.Get(0).([]model.InvoiceLine)
	return ls, args.Error(1)
}

var _ repository.InvoiceLineRepository = (*MockInvoiceLineRepo)(nil)

type MockOrderHistoryRepo struct {
	mock.Mock
}

func (m *MockOrderHistoryRepo) Create(ctx context.Context, h *model.OrderHistory) error {
	return m.Called(ctx, h).Error(0)
}

func (m *MockOrderHistoryRepo) ListByUserID(ctx context.Context, userID string) ([]model.OrderHistory, error) {
	args := m.Called(ctx, userID)
	hs, _ := args.Get(0).([]model.OrderHistory)
	return hs, args.Error(1)
}

var _ repository.OrderHistoryRepository = (*MockOrderHistoryRepo)(nil)

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func (m *MockReportRepo) RevenueByItem(ctx context.Context) ([]model.ItemRevenue, error) {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]model.ItemRevenue)
	return rs, args.Error(1)
}

func (m *MockReportRepo) RevenueByDayAndItem(ctx context.Context, ascending bool, limit int) ([]model.DayItemRevenue, error) {
	args := m.Called(ctx, ascending, limit)
	rs, _ := args.Get(0).([]model.DayItemRevenue)
	return rs, args.Error(1)
}

var _ repository.ReportRepository = (*MockReportRepo)(nil)

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditRepo) List(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	ls, _ := args.Get(0).([]model.AuditLog)
	return ls, args.Error(1)
}

var _ repository.AuditLogRepository = (*MockAuditRepo)(nil)

// =====================
// TxManagerモック：fnをそのままmockのReposで実行
// =====================

type MockTxRepos struct {
	UsersRepo     *MockUserRepo
	CartsRepo     *MockCartRepo
	CartItemsRepo *MockCartItemRepo
	InvoicesRepo  *MockInvoiceRepo
	LinesRepo     *MockInvoiceLineRepo
	HistoriesRepo *MockOrderHistoryRepo
}

func (r *MockTxRepos) Users() repository.UserRepository                   { return r.UsersRepo }
func (r *MockTxRepos) Carts() repository.CartRepository                   { return r.CartsRepo }
func (r *MockTxRepos) CartItems() repository.CartItemRepository           { return r.CartItemsRepo }
func (r *MockTxRepos) Invoices() repository.InvoiceRepository             { return r.InvoicesRepo }
func (r *MockTxRepos) InvoiceLines() repository.InvoiceLineRepository     { return r.LinesRepo }
func (r *MockTxRepos) OrderHistories() repository.OrderHistoryRepository { return r.HistoriesRepo }

var _ repository.TxRepos = (*MockTxRepos)(nil)

type MockTxManager struct {
	mock.Mock
	Repos repository.TxRepos
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

// =====================
// その他の部品
// =====================

// 呼ばれた順に id-1, id-2, ... を返す
type seqID struct {
	n int
}

func (g *seqID) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishInvoicePaid(ctx context.Context, ev model.InvoicePaidEvent) error {
	return m.Called(ctx, ev).Error(0)
}

var _ usecase.InvoiceEventPublisher = (*MockPublisher)(nil)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// HTTPErrorのstatusとmessageを確認
func requireHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %T: %v", err, err)
	require.Equal(t, status, he.Status)
	if msg != "" {
		require.Equal(t, msg, he.Message)
	}
}

