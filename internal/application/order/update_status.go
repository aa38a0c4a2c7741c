package order

import (
	"context"

	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// UpdateStatusUseCase 订单状态与支付状态更新用例
type UpdateStatusUseCase struct {
	orderRepo order.Repository
}

// NewUpdateStatusUseCase 创建状态更新用例
func NewUpdateStatusUseCase(orderRepo order.Repository) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo}
}

// SetStatus 更新订单状态
// 置为DELIVERED时由实体记录送达时间
func (uc *UpdateStatusUseCase) SetStatus(ctx context.Context, orderID uint, status order.Status) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.SetStatus(status); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SetPaymentStatus 更新支付状态
func (uc *UpdateStatusUseCase) SetPaymentStatus(ctx context.Context, orderID uint, status order.PaymentStatus) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.SetPaymentStatus(status); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
