package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apporder "github.com/xiebiao/schoolshop/internal/application/order"
	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// fakeOrderRepo 内存版订单仓储,只实现查询相关场景
type fakeOrderRepo struct {
	orders map[uint]*order.Order
}

func newFakeOrderRepo(orders ...*order.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uint]*order.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	_, err := r.FindByOrderNumber(ctx, orderNumber)
	return err == nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID uint) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return r.List(ctx)
}

func (r *fakeOrderRepo) Search(ctx context.Context, params order.SearchParams) ([]*order.Order, int64, error) {
	out, _ := r.List(ctx)
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) SumFinalAmountByStatuses(ctx context.Context, statuses []order.Status) (int64, error) {
	var total int64
	for _, o := range r.orders {
		for _, s := range statuses {
			if o.Status == s {
				total += o.FinalAmount
			}
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) SumFinalAmountByDateRange(ctx context.Context, start, end time.Time, statuses []order.Status) (int64, error) {
	var total int64
	for _, o := range r.orders {
		for _, s := range statuses {
			if o.Status == s && !o.OrderDate.Before(start) && !o.OrderDate.After(end) {
				total += o.FinalAmount
			}
		}
	}
	return total, nil
}

var _ order.Repository = (*fakeOrderRepo)(nil)

func setupOrderRouter(repo order.Repository) *gin.Engine {
	h := NewOrderHandler(
		nil, // 下单用例不在本文件覆盖范围
		nil,
		apporder.NewUpdateStatusUseCase(repo),
		apporder.NewQueryOrdersUseCase(repo),
		apporder.NewSalesAnalyticsUseCase(repo),
	)
	r := gin.New()
	r.GET("/api/orders/search", h.SearchOrders)
	r.GET("/api/orders/status/:status", h.ListByStatus)
	r.GET("/api/orders/number/:orderNumber", h.GetOrderByNumber)
	r.GET("/api/orders/analytics/total-sales", h.TotalSales)
	r.GET("/api/orders/analytics/sales-by-date-range", h.SalesByDateRange)
	r.PUT("/api/orders/:id/status", h.UpdateStatus)
	return r
}

func sampleOrder(id uint, status order.Status, amount int64, date time.Time) *order.Order {
	return &order.Order{
		ID:          id,
		OrderNumber: order.GenerateOrderNumber(date),
		CustomerID:  1,
		Status:      status,
		FinalAmount: amount,
		OrderDate:   date,
	}
}

func TestOrderHandler_ListByStatus_Invalid(t *testing.T) {
	r := setupOrderRouter(newFakeOrderRepo())

	w := performRequest(r, http.MethodGet, "/api/orders/status/SHIPPING", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByNumber_NotFound(t *testing.T) {
	r := setupOrderRouter(newFakeOrderRepo())

	w := performRequest(r, http.MethodGet, "/api/orders/number/ORD20260101000000", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Search_InvalidDate(t *testing.T) {
	r := setupOrderRouter(newFakeOrderRepo())

	w := performRequest(r, http.MethodGet, "/api/orders/search?startDate=01-09-2026", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	date := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo(sampleOrder(1, order.StatusShipped, 45000, date))
	r := setupOrderRouter(repo)

	w := performRequest(r, http.MethodPut, "/api/orders/1/status", gin.H{"status": "DELIVERED"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Status       string `json:"status"`
			DeliveryDate string `json:"delivery_date"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DELIVERED", resp.Data.Status)
	assert.NotEmpty(t, resp.Data.DeliveryDate, "送达时应记录送达时间")

	// 非法状态
	w = performRequest(r, http.MethodPut, "/api/orders/1/status", gin.H{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_TotalSales(t *testing.T) {
	date := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeOrderRepo(
		sampleOrder(1, order.StatusConfirmed, 45000, date),
		sampleOrder(2, order.StatusDelivered, 32000, date),
		sampleOrder(3, order.StatusCancelled, 99000, date),
	)
	r := setupOrderRouter(repo)

	w := performRequest(r, http.MethodGet, "/api/orders/analytics/total-sales", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalSales       int64  `json:"total_sales"`
			TotalSalesRupees string `json:"total_sales_rupees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(77000), resp.Data.TotalSales, "只统计已确认和已送达订单")
	assert.Equal(t, "770.00", resp.Data.TotalSalesRupees)
}

func TestOrderHandler_SalesByDateRange(t *testing.T) {
	repo := newFakeOrderRepo(
		sampleOrder(1, order.StatusConfirmed, 45000, time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)),
		sampleOrder(2, order.StatusDelivered, 32000, time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)),
	)
	r := setupOrderRouter(repo)

	// 区间颠倒
	w := performRequest(r, http.MethodGet,
		"/api/orders/analytics/sales-by-date-range?startDate=2026-08-31&endDate=2026-08-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 缺少参数
	w = performRequest(r, http.MethodGet, "/api/orders/analytics/sales-by-date-range?startDate=2026-08-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
