package usecase

import (
	"context"
	"net/http"
	"testing"

	"syrupstore/internal/domain/model"
	repo "syrupstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminOrderUsecase_SetStatus_InvalidLabel(t *testing.T) {
	tm, repos := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	_, err := uc.SetStatus(context.Background(), 42, AdminUpdateOrderStatusInput{Status: "REFUNDED"})
	assertHTTPStatus(t, err, http.StatusBadRequest, "invalid status")

	//不正ラベルではDBに触らない
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_SetStatus_Success(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 1, Status: model.OrderStatusPaid}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusShipped).Return(nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	out, err := uc.SetStatus(ctx, 42, AdminUpdateOrderStatusInput{Status: "SHIPPED"})
	assert.NoError(t, err)
	assert.Equal(t, "SHIPPED", out.Status)
}

// 遷移グラフは強制しない（巻き戻しも通る）
func TestAdminOrderUsecase_SetStatus_AllowsRewind(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 1, Status: model.OrderStatusDelivered}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusPendingPayment).Return(nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	out, err := uc.SetStatus(ctx, 42, AdminUpdateOrderStatusInput{Status: "PENDING_PAYMENT"})
	assert.NoError(t, err)
	assert.Equal(t, "PENDING_PAYMENT", out.Status)
}

func TestAdminOrderUsecase_SetStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	repos.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.SetStatus(ctx, 99, AdminUpdateOrderStatusInput{Status: "PAID"})
	assertHTTPStatus(t, err, http.StatusNotFound, "not found")
}

func TestAdminOrderUsecase_MarkPaid(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	repos.orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 1, Status: model.OrderStatusPendingPayment}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusPaid).Return(nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	out, err := uc.MarkPaid(ctx, 42)
	assert.NoError(t, err)
	assert.Equal(t, "PAID", out.Status)
}

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	tm, _ := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertHTTPStatus(t, err, http.StatusBadRequest, "invalid page")
}

func TestAdminOrderUsecase_List_Success(t *testing.T) {
	ctx := context.Background()
	tm, repos := newTxStub()
	uc := NewAdminOrderUsecase(tm)

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "PAID"}
	repos.orders.On("ListAdmin", mock.Anything, f).Return([]model.Order{
		{ID: 1, UserID: 1, Status: model.OrderStatusPaid},
	}, int64(1), nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	outs, err := uc.List(ctx, f)
	assert.NoError(t, err)
	assert.Len(t, outs, 1)
}
