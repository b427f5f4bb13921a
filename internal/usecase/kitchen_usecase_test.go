package usecase_test

import (
	"context"
	"testing"

	"tableside/internal/domain/model"
	"tableside/internal/event"
	repo "tableside/internal/repository"
	"tableside/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type kitchenFixture struct {
	tx         *TxManagerMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	menu       *MenuRepoMock

	//トランザクション外の監査リポジトリ（参照系で使う）
	audit *AuditRepoMock

	//トランザクション内の監査リポジトリ（ステータス更新と同じtxで書く）
	txAudit *AuditRepoMock

	events *PublisherMock

	uc *usecase.KitchenUsecase
}

func newKitchenFixture() *kitchenFixture {
	f := &kitchenFixture{
		tx:         new(TxManagerMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		menu:       new(MenuRepoMock),
		audit:      new(AuditRepoMock),
		txAudit:    new(AuditRepoMock),
		events:     new(PublisherMock),
	}

	f.tx.Repos = &TxReposMock{
		orders:     f.orders,
		orderItems: f.orderItems,
		menu:       f.menu,
		auditLogs:  f.txAudit,
	}

	f.uc = usecase.NewKitchenUsecase(f.tx, f.audit, f.events)
	return f
}

// =====================
// ListActive
// =====================

func TestKitchenUsecase_ListActive_InvalidRestaurantID(t *testing.T) {
	f := newKitchenFixture()

	_, err := f.uc.ListActive(context.Background(), usecase.KitchenListInput{RestaurantID: 0})
	assertErrContains(t, err, "invalid restaurant_id")
}

func TestKitchenUsecase_ListActive_InvalidStatus(t *testing.T) {
	f := newKitchenFixture()

	_, err := f.uc.ListActive(context.Background(), usecase.KitchenListInput{RestaurantID: 1, Status: "XXX"})
	assertErrContains(t, err, "invalid status")
}

// DRAFTはカート。KDSの一覧には絶対に出さない。
func TestKitchenUsecase_ListActive_DraftFilterRejected(t *testing.T) {
	f := newKitchenFixture()

	_, err := f.uc.ListActive(context.Background(), usecase.KitchenListInput{RestaurantID: 1, Status: "DRAFT"})
	assertErrContains(t, err, "invalid status")
}

func TestKitchenUsecase_ListActive_Success(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	orders := []model.Order{
		{ID: 11, RestaurantID: 1, DiningTableID: 5, Status: model.OrderStatusSubmitted},
		{ID: 10, RestaurantID: 1, DiningTableID: 6, Status: model.OrderStatusReady},
	}
	f.orders.On("ListActive", mock.Anything, repo.ActiveOrderFilter{RestaurantID: 1}).Return(orders, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{
		{MenuItemID: 100, Quantity: 2, UnitPriceCents: 1800},
	}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	f.menu.On("FindItemByID", mock.Anything, int64(100)).Return(model.MenuItem{ID: 100, Name: "Bruschetta"}, nil)

	outs, err := f.uc.ListActive(context.Background(), usecase.KitchenListInput{RestaurantID: 1})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))
	assert.Equal(t, int64(3600), outs[0].TotalCents)
	assert.Equal(t, "Bruschetta", outs[0].Items[0].Name)

	f.orders.AssertExpectations(t)
}

func TestKitchenUsecase_ListActive_StatusFilterPassed(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	ready := model.OrderStatusReady
	f.orders.On("ListActive", mock.Anything, repo.ActiveOrderFilter{RestaurantID: 1, Status: &ready}).Return([]model.Order{}, nil)

	outs, err := f.uc.ListActive(context.Background(), usecase.KitchenListInput{RestaurantID: 1, Status: "READY"})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(outs))
}

// =====================
// ListAuditForOrder
// =====================

func TestKitchenUsecase_ListAuditForOrder_InvalidID(t *testing.T) {
	f := newKitchenFixture()

	_, err := f.uc.ListAuditForOrder(context.Background(), 0, 0, 0)
	assertErrContains(t, err, "invalid id")
}

func TestKitchenUsecase_ListAuditForOrder_FiltersByOrder(t *testing.T) {
	f := newKitchenFixture()

	orderID := int64(11)
	f.audit.On("List", mock.Anything, mock.MatchedBy(func(flt repo.AuditLogFilter) bool {
		return flt.ResourceType != nil && *flt.ResourceType == model.AuditResourceOrder &&
			flt.ResourceID != nil && *flt.ResourceID == orderID
	})).Return([]model.AuditLog{
		{ID: 2, ActorName: "kitchen-1", Action: model.AuditActionUpdateOrderStatus, ResourceID: orderID, BeforeJSON: `{"status":"SUBMITTED"}`, AfterJSON: `{"status":"IN_PROGRESS"}`},
	}, nil)

	outs, err := f.uc.ListAuditForOrder(context.Background(), orderID, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "kitchen-1", outs[0].ActorName)
	assert.Equal(t, "UPDATE_ORDER_STATUS", outs[0].Action)

	f.audit.AssertExpectations(t)
}

// =====================
// UpdateStatus
// =====================

func TestKitchenUsecase_UpdateStatus_InvalidID(t *testing.T) {
	f := newKitchenFixture()

	err := f.uc.UpdateStatus(context.Background(), 0, usecase.UpdateOrderStatusInput{Status: "READY"})
	assertErrContains(t, err, "invalid id")
}

func TestKitchenUsecase_UpdateStatus_UnknownStatus(t *testing.T) {
	f := newKitchenFixture()

	err := f.uc.UpdateStatus(context.Background(), 1, usecase.UpdateOrderStatusInput{Status: "DONE"})
	assertErrContains(t, err, "invalid status")
}

// 提出はゲスト側のSubmitだけ。KDSからDRAFT/SUBMITTEDには戻せない。
func TestKitchenUsecase_UpdateStatus_DraftTargetRejected(t *testing.T) {
	f := newKitchenFixture()

	err := f.uc.UpdateStatus(context.Background(), 1, usecase.UpdateOrderStatusInput{Status: "DRAFT"})
	assertErrContains(t, err, "invalid transition")

	err = f.uc.UpdateStatus(context.Background(), 1, usecase.UpdateOrderStatusInput{Status: "SUBMITTED"})
	assertErrContains(t, err, "invalid transition")
}

func TestKitchenUsecase_UpdateStatus_NotFound(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	err := f.uc.UpdateStatus(context.Background(), 99, usecase.UpdateOrderStatusInput{Status: "IN_PROGRESS"})
	assertErrContains(t, err, "not found")
}

func TestKitchenUsecase_UpdateStatus_SameStatus_NoOp(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(11)).Return(model.Order{ID: 11, Status: model.OrderStatusReady}, nil)

	err := f.uc.UpdateStatus(context.Background(), 11, usecase.UpdateOrderStatusInput{Status: "READY"})
	assert.NoError(t, err)

	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.txAudit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestKitchenUsecase_UpdateStatus_SkipAhead_Rejected(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(11)).Return(model.Order{ID: 11, Status: model.OrderStatusSubmitted}, nil)

	//SUBMITTEDからREADYへは飛べない
	err := f.uc.UpdateStatus(context.Background(), 11, usecase.UpdateOrderStatusInput{Status: "READY"})
	assertErrContains(t, err, "invalid transition")
}

func TestKitchenUsecase_UpdateStatus_TerminalCancel_Rejected(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByID", mock.Anything, int64(11)).Return(model.Order{ID: 11, Status: model.OrderStatusServed}, nil)

	err := f.uc.UpdateStatus(context.Background(), 11, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})
	assertErrContains(t, err, "invalid transition")
}

func TestKitchenUsecase_UpdateStatus_Advances_Audits_Publishes(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(11)
	f.orders.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:            orderID,
		RestaurantID:  1,
		DiningTableID: 5,
		Status:        model.OrderStatusSubmitted,
	}, nil)
	f.orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusInProgress).Return(nil)

	f.txAudit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		// CreatedAt は now なので見ない
		return a.ActorName == "kitchen-1" &&
			a.Action == model.AuditActionUpdateOrderStatus &&
			a.ResourceType == model.AuditResourceOrder &&
			a.ResourceID == orderID &&
			a.BeforeJSON == `{"status":"SUBMITTED"}` &&
			a.AfterJSON == `{"status":"IN_PROGRESS"}`
	})).Return(nil)

	f.orderItems.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{
		{MenuItemID: 100, Quantity: 1, UnitPriceCents: 4500},
	}, nil)

	f.events.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(ev event.OrderEvent) bool {
		return ev.Type == event.TypeOrderStatusChanged &&
			ev.OrderID == orderID &&
			ev.Status == "IN_PROGRESS" &&
			ev.TotalCents == 4500
	})).Return(nil)

	err := f.uc.UpdateStatus(context.Background(), orderID, usecase.UpdateOrderStatusInput{
		Status:    "IN_PROGRESS",
		ActorName: "kitchen-1",
	})
	assert.NoError(t, err)

	f.orders.AssertExpectations(t)
	f.txAudit.AssertExpectations(t)
	f.events.AssertExpectations(t)

	//監査はトランザクション内のリポジトリにだけ書く
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestKitchenUsecase_UpdateStatus_CancelFromInProgress(t *testing.T) {
	f := newKitchenFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(12)
	f.orders.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusInProgress,
	}, nil)
	f.orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCancelled).Return(nil)
	f.txAudit.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.orderItems.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{}, nil)
	f.events.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	err := f.uc.UpdateStatus(context.Background(), orderID, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})
	assert.NoError(t, err)

	f.orders.AssertExpectations(t)
}
