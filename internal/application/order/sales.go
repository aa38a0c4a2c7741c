package order

import (
	"context"
	"time"

	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// settledStatuses 计入销售额的订单状态
// 只有已确认和已送达的订单算作成交
var settledStatuses = []order.Status{order.StatusConfirmed, order.StatusDelivered}

// SalesAnalyticsUseCase 销售统计用例
type SalesAnalyticsUseCase struct {
	orderRepo order.Repository
}

// NewSalesAnalyticsUseCase 创建销售统计用例
func NewSalesAnalyticsUseCase(orderRepo order.Repository) *SalesAnalyticsUseCase {
	return &SalesAnalyticsUseCase{orderRepo: orderRepo}
}

// TotalSales 全部成交金额(派萨)
func (uc *SalesAnalyticsUseCase) TotalSales(ctx context.Context) (int64, error) {
	return uc.orderRepo.SumFinalAmountByStatuses(ctx, settledStatuses)
}

// SalesByDateRange 指定日期区间的成交金额,区间两端含当天
func (uc *SalesAnalyticsUseCase) SalesByDateRange(ctx context.Context, start, end time.Time) (int64, error) {
	if start.After(end) {
		return 0, order.ErrInvalidDateRange
	}
	return uc.orderRepo.SumFinalAmountByDateRange(ctx, start, end, settledStatuses)
}
