package order

import (
	"context"
	"time"
)

// Repository 订单仓储接口
// 订单与明细作为一个聚合整体读写
type Repository interface {
	// Create 创建订单及其明细
	// 订单号冲突时返回ErrOrderNumberConflict,由上层重试
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找订单(含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNumber 根据订单号查找订单(含明细)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// ExistsByOrderNumber 判断订单号是否已存在
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// Update 更新订单主记录(不改写明细)
	Update(ctx context.Context, o *Order) error

	// List 查询全部订单,按下单时间倒序
	List(ctx context.Context) ([]*Order, error)

	// ListByCustomer 查询客户的全部订单
	ListByCustomer(ctx context.Context, customerID uint) ([]*Order, error)

	// ListByStatus 按状态查询
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)

	// ListRecent 查询最近N笔订单
	ListRecent(ctx context.Context, limit int) ([]*Order, error)

	// Search 多条件组合搜索(分页)
	Search(ctx context.Context, params SearchParams) ([]*Order, int64, error)

	// SumFinalAmountByStatuses 按状态集合汇总成交金额
	SumFinalAmountByStatuses(ctx context.Context, statuses []Status) (int64, error)

	// SumFinalAmountByDateRange 按下单日期区间汇总成交金额(区间两端含当天)
	SumFinalAmountByDateRange(ctx context.Context, start, end time.Time, statuses []Status) (int64, error)
}

// SearchParams 订单组合搜索参数
// 零值条件不参与过滤;日期区间为闭区间,按自然日对齐
type SearchParams struct {
	OrderNumber string // 订单号子串匹配
	CustomerID  uint
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Size        int
	SortBy      string
	SortDir     string
}
