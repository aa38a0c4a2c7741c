package order

import (
	"context"
	"time"

	"github.com/xiebiao/schoolshop/internal/domain/book"
	"github.com/xiebiao/schoolshop/internal/domain/customer"
	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// TxManager 事务执行接口
// 生产实现为mysql.TxManager,测试中用内存事务替身
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// orderNumberAttempts 订单号冲突时的最大重试次数
const orderNumberAttempts = 3

// CreateOrderUseCase 下单用例
// 设计说明:整个流程在一个数据库事务内完成
// 1. 悲观锁锁定全部图书,防止并发超卖
// 2. 快照锁定时的价格与图书元数据,防止改价影响订单
// 3. 订单号冲突时换带毫秒后缀的订单号重试,唯一索引兜底
type CreateOrderUseCase struct {
	orderRepo    order.Repository
	bookRepo     book.Repository
	customerRepo customer.Repository
	txManager    TxManager
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	customerRepo customer.Repository,
	txManager TxManager,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:    orderRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	CustomerID      uint
	Items           []CreateOrderItem
	DeliveryAddress string
	DeliveryCity    string
	DeliveryState   string
	DeliveryPincode string
	ContactPhone    string
	PaymentMethod   order.PaymentMethod
	Notes           string
}

// CreateOrderItem 下单明细项
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	// 1. 参数校验
	if len(req.Items) == 0 {
		return nil, order.ErrEmptyItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
	}
	if req.PaymentMethod != "" {
		if _, ok := order.ParsePaymentMethod(string(req.PaymentMethod)); !ok {
			return nil, order.ErrInvalidPaymentMethod
		}
	}

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 客户必须存在且有效
		if _, err := uc.customerRepo.FindByID(txCtx, req.CustomerID); err != nil {
			return err
		}

		// 3. 锁定全部图书并校验库存
		// SELECT FOR UPDATE加排他锁,其他事务在COMMIT前无法扣减同一本书
		books := make(map[uint]*book.Book, len(req.Items))
		for _, item := range req.Items {
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}
			if b.Quantity < item.Quantity {
				return book.NewInsufficientStockError(b.Title, b.Quantity, item.Quantity)
			}
			books[item.BookID] = b
		}

		// 4. 按锁定时的价格生成明细快照
		items := make([]order.OrderItem, len(req.Items))
		var total int64
		for i, item := range req.Items {
			items[i] = order.NewItemFromBook(books[item.BookID], item.Quantity)
			total += items[i].TotalPrice
		}

		// 5. 组装订单并持久化,订单号冲突时换后缀重试
		now := time.Now()
		o := &order.Order{
			CustomerID:      req.CustomerID,
			Status:          order.StatusPending,
			OrderDate:       now,
			DeliveryAddress: req.DeliveryAddress,
			DeliveryCity:    req.DeliveryCity,
			DeliveryState:   req.DeliveryState,
			DeliveryPincode: req.DeliveryPincode,
			ContactPhone:    req.ContactPhone,
			PaymentMethod:   req.PaymentMethod,
			PaymentStatus:   order.PaymentStatusPending,
			Notes:           req.Notes,
			Items:           items,
		}
		o.SetTotals(total, 0)

		if err := uc.createWithUniqueNumber(txCtx, o); err != nil {
			return err
		}

		// 6. 扣减全部库存
		// 行已被锁定,原子UPDATE的WHERE条件只是最后一道防线
		for _, item := range req.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return err
			}
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// createWithUniqueNumber 生成订单号并插入,冲突时重试
// 先做存在性检查降低冲突概率,真正的唯一性由订单号唯一索引保证
func (uc *CreateOrderUseCase) createWithUniqueNumber(ctx context.Context, o *order.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		now := time.Now()
		if attempt == 0 {
			o.OrderNumber = order.GenerateOrderNumber(now)
		} else {
			o.OrderNumber = order.GenerateOrderNumberWithSuffix(now)
		}

		exists, err := uc.orderRepo.ExistsByOrderNumber(ctx, o.OrderNumber)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		err = uc.orderRepo.Create(ctx, o)
		if err == nil {
			return nil
		}
		if err != order.ErrOrderNumberConflict {
			return err
		}
	}
	return order.ErrOrderNumberConflict
}
