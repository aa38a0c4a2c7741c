package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// TestCancelOrder_RestoresStock 取消订单回补库存
func TestCancelOrder_RestoresStock(t *testing.T) {
	createUC, bookRepo, orderRepo := newCreateFixture()
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, bookRepo.books[1].Quantity)

	cancelUC := NewCancelOrderUseCase(orderRepo, bookRepo, fakeTxManager{})
	cancelled, err := cancelUC.Execute(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, order.StatusCancelled, cancelled.Status)
	assert.Equal(t, 5, bookRepo.books[1].Quantity)
}

// TestCancelOrder_RestoresStockForInactiveBook 图书下架后取消订单仍回补库存
func TestCancelOrder_RestoresStockForInactiveBook(t *testing.T) {
	createUC, bookRepo, orderRepo := newCreateFixture()
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, bookRepo.books[1].Quantity)

	// 下单后图书下架
	bookRepo.books[1].Active = false

	cancelUC := NewCancelOrderUseCase(orderRepo, bookRepo, fakeTxManager{})
	cancelled, err := cancelUC.Execute(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, order.StatusCancelled, cancelled.Status)
	assert.Equal(t, 5, bookRepo.books[1].Quantity)
}

// TestCancelOrder_DeliveredRejected 已送达订单拒绝取消
func TestCancelOrder_DeliveredRejected(t *testing.T) {
	createUC, bookRepo, orderRepo := newCreateFixture()
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	statusUC := NewUpdateStatusUseCase(orderRepo)
	_, err = statusUC.SetStatus(ctx, created.ID, order.StatusDelivered)
	require.NoError(t, err)

	cancelUC := NewCancelOrderUseCase(orderRepo, bookRepo, fakeTxManager{})
	_, err = cancelUC.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotCancellable)

	// 库存不回补
	assert.Equal(t, 3, bookRepo.books[1].Quantity)
}

// TestCancelOrder_Twice 重复取消被拒绝
func TestCancelOrder_Twice(t *testing.T) {
	createUC, bookRepo, orderRepo := newCreateFixture()
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	cancelUC := NewCancelOrderUseCase(orderRepo, bookRepo, fakeTxManager{})
	_, err = cancelUC.Execute(ctx, created.ID)
	require.NoError(t, err)

	_, err = cancelUC.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotCancellable)

	// 第二次取消不会重复回补
	assert.Equal(t, 5, bookRepo.books[1].Quantity)
}

// TestUpdateStatus_DeliveredStampsDate 置为DELIVERED时记录送达时间
func TestUpdateStatus_DeliveredStampsDate(t *testing.T) {
	createUC, _, orderRepo := newCreateFixture()
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Nil(t, created.DeliveryDate)

	statusUC := NewUpdateStatusUseCase(orderRepo)
	updated, err := statusUC.SetStatus(ctx, created.ID, order.StatusDelivered)
	require.NoError(t, err)
	assert.NotNil(t, updated.DeliveryDate)

	// 支付状态独立更新
	updated, err = statusUC.SetPaymentStatus(ctx, created.ID, order.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusPaid, updated.PaymentStatus)

	_, err = statusUC.SetPaymentStatus(ctx, created.ID, "IOU")
	assert.ErrorIs(t, err, order.ErrInvalidPaymentStatus)
}

// TestSalesAnalytics_TotalSales 只统计已确认与已送达订单
func TestSalesAnalytics_TotalSales(t *testing.T) {
	createUC, _, orderRepo := newCreateFixture()
	ctx := context.Background()

	first, err := createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 2}}, // 90000
	})
	require.NoError(t, err)

	_, err = createUC.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 2, Quantity: 1}}, // 32000, 保持PENDING
	})
	require.NoError(t, err)

	statusUC := NewUpdateStatusUseCase(orderRepo)
	_, err = statusUC.SetStatus(ctx, first.ID, order.StatusConfirmed)
	require.NoError(t, err)

	salesUC := NewSalesAnalyticsUseCase(orderRepo)
	total, err := salesUC.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(90000), total)
}
