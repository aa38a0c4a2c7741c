package order

import (
	"context"

	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// QueryOrdersUseCase 订单查询用例
type QueryOrdersUseCase struct {
	orderRepo order.Repository
}

// NewQueryOrdersUseCase 创建订单查询用例
func NewQueryOrdersUseCase(orderRepo order.Repository) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{orderRepo: orderRepo}
}

// GetByID 根据ID获取订单
func (uc *QueryOrdersUseCase) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	return uc.orderRepo.FindByID(ctx, id)
}

// GetByOrderNumber 根据订单号获取订单
func (uc *QueryOrdersUseCase) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	return uc.orderRepo.FindByOrderNumber(ctx, orderNumber)
}

// List 查询全部订单
func (uc *QueryOrdersUseCase) List(ctx context.Context) ([]*order.Order, error) {
	return uc.orderRepo.List(ctx)
}

// ListByCustomer 查询客户的订单
func (uc *QueryOrdersUseCase) ListByCustomer(ctx context.Context, customerID uint) ([]*order.Order, error) {
	return uc.orderRepo.ListByCustomer(ctx, customerID)
}

// ListByStatus 按状态查询订单
func (uc *QueryOrdersUseCase) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if _, ok := order.ParseStatus(string(status)); !ok {
		return nil, order.ErrInvalidStatus
	}
	return uc.orderRepo.ListByStatus(ctx, status)
}

// ListRecent 查询最近N笔订单
func (uc *QueryOrdersUseCase) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.orderRepo.ListRecent(ctx, limit)
}

// Search 组合搜索
func (uc *QueryOrdersUseCase) Search(ctx context.Context, params order.SearchParams) ([]*order.Order, int64, error) {
	if params.Status != "" {
		if _, ok := order.ParseStatus(string(params.Status)); !ok {
			return nil, 0, order.ErrInvalidStatus
		}
	}
	if params.StartDate != nil && params.EndDate != nil && params.StartDate.After(*params.EndDate) {
		return nil, 0, order.ErrInvalidDateRange
	}
	if params.Page < 0 {
		params.Page = 0
	}
	if params.Size <= 0 {
		params.Size = 10
	}
	if params.Size > 100 {
		params.Size = 100
	}
	return uc.orderRepo.Search(ctx, params)
}
