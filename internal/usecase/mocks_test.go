package usecase_test

import (
	"context"
	"strings"
	"testing"

	"tableside/internal/domain/model"
	"tableside/internal/event"
	repo "tableside/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	payments    repo.PaymentRepository
	restaurants repo.RestaurantRepository
	tables      repo.DiningTableRepository
	menu        repo.MenuRepository
	auditLogs   repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository           { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *TxReposMock) Payments() repo.PaymentRepository       { return r.payments }
func (r *TxReposMock) Restaurants() repo.RestaurantRepository { return r.restaurants }
func (r *TxReposMock) Tables() repo.DiningTableRepository     { return r.tables }
func (r *TxReposMock) Menu() repo.MenuRepository              { return r.menu }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository     { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type RestaurantRepoMock struct{ mock.Mock }

func (m *RestaurantRepoMock) FindBySlug(ctx context.Context, slug string) (model.Restaurant, error) {
	args := m.Called(ctx, slug)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepoMock) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

type DiningTableRepoMock struct{ mock.Mock }

func (m *DiningTableRepoMock) FindByRestaurantAndCode(ctx context.Context, restaurantID int64, code string) (model.DiningTable, error) {
	args := m.Called(ctx, restaurantID, code)
	t, _ := args.Get(0).(model.DiningTable)
	return t, args.Error(1)
}

func (m *DiningTableRepoMock) FindByID(ctx context.Context, id int64) (model.DiningTable, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(model.DiningTable)
	return t, args.Error(1)
}

type MenuRepoMock struct{ mock.Mock }

func (m *MenuRepoMock) ListCategories(ctx context.Context, restaurantID int64) ([]model.MenuCategory, error) {
	args := m.Called(ctx, restaurantID)
	cs, _ := args.Get(0).([]model.MenuCategory)
	return cs, args.Error(1)
}

func (m *MenuRepoMock) ListItems(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuRepoMock) FindItemByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.MenuItem)
	return it, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindDraftByTable(ctx context.Context, restaurantID int64, tableID int64) (model.Order, error) {
	args := m.Called(ctx, restaurantID, tableID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindOrCreateDraft(ctx context.Context, restaurantID int64, tableID int64, guestSessionID string) (model.Order, error) {
	args := m.Called(ctx, restaurantID, tableID, guestSessionID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListActive(ctx context.Context, f repo.ActiveOrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByTable(ctx context.Context, restaurantID int64, tableID int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, restaurantID, tableID, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) FindByID(ctx context.Context, lineID int64) (model.OrderItem, error) {
	args := m.Called(ctx, lineID)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Error(1)
}

func (m *OrderItemRepoMock) UpsertLine(ctx context.Context, orderID int64, menuItemID int64, notes string, addQty int64, unitPriceCents int64) error {
	args := m.Called(ctx, orderID, menuItemID, notes, addQty, unitPriceCents)
	return args.Error(0)
}

func (m *OrderItemRepoMock) FindLine(ctx context.Context, orderID int64, menuItemID int64, notes string) (model.OrderItem, error) {
	args := m.Called(ctx, orderID, menuItemID, notes)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Error(1)
}

func (m *OrderItemRepoMock) UpdateQuantity(ctx context.Context, lineID int64, qty int64) error {
	args := m.Called(ctx, lineID, qty)
	return args.Error(0)
}

func (m *OrderItemRepoMock) DeleteByID(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *OrderItemRepoMock) IsOwnedByOrder(ctx context.Context, lineID int64, orderID int64) (bool, error) {
	args := m.Called(ctx, lineID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderItemRepoMock) TotalQuantityByOrderID(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Publisher mock
// =====================

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishOrderEvent(ctx context.Context, ev event.OrderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
