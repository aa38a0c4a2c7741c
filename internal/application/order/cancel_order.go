package order

import (
	"context"

	"github.com/xiebiao/schoolshop/internal/domain/book"
	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// CancelOrderUseCase 取消订单用例
// 取消与库存回补在同一事务内完成,失败则整体回滚
type CancelOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager TxManager
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager TxManager,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// Execute 取消订单并回补库存
func (uc *CancelOrderUseCase) Execute(ctx context.Context, orderID uint) (*order.Order, error) {
	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		// 已送达、已取消、已退货的订单拒绝取消
		if err := o.MarkCancelled(); err != nil {
			return err
		}

		// 按明细逐项回补库存,已下架图书同样回补
		for _, item := range o.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
