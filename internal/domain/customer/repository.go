package customer

import (
	"context"
)

// Repository 客户仓储接口
type Repository interface {
	// Create 创建客户
	Create(ctx context.Context, c *Customer) error

	// FindByID 根据ID查找客户(仅返回有效客户)
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// FindByEmail 根据邮箱查找有效客户
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindByPhone 根据手机号查找有效客户
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// Update 更新客户
	Update(ctx context.Context, c *Customer) error

	// Delete 停用客户(软删除)
	Delete(ctx context.Context, id uint) error

	// List 查询全部有效客户
	List(ctx context.Context) ([]*Customer, error)

	// ListByType 按客户类型查询
	ListByType(ctx context.Context, t Type) ([]*Customer, error)

	// ListByCity 按城市查询
	ListByCity(ctx context.Context, city string) ([]*Customer, error)

	// Search 按关键词搜索(匹配姓名、邮箱、手机号、机构名)
	Search(ctx context.Context, keyword string) ([]*Customer, error)

	// ListWithOrders 查询至少有一笔订单的有效客户
	ListWithOrders(ctx context.Context) ([]*Customer, error)

	// ListTopBySpend 按累计订单金额倒序查询前N位有效客户
	ListTopBySpend(ctx context.Context, limit int) ([]*Customer, error)
}

// OrderSummarizer 客户订单汇总接口
// 由订单仓储实现,读取时实时计算客户的订单数与订单总额
type OrderSummarizer interface {
	SummarizeByCustomer(ctx context.Context, customerID uint) (count int64, totalValue int64, err error)
}
