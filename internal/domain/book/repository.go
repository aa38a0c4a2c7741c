package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找图书(仅返回未下架的图书)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, b *Book) error

	// Delete 下架图书(软删除,置is_active为false)
	Delete(ctx context.Context, id uint) error

	// List 查询全部在售图书
	List(ctx context.Context) ([]*Book, error)

	// ListByGrade 按年级查询
	ListByGrade(ctx context.Context, grade int) ([]*Book, error)

	// ListBySubject 按学科模糊查询(大小写无关子串)
	ListBySubject(ctx context.Context, subject string) ([]*Book, error)

	// ListByBoard 按教育体系查询
	ListByBoard(ctx context.Context, board Board) ([]*Book, error)

	// ListByCategory 按分类查询
	ListByCategory(ctx context.Context, categoryID uint) ([]*Book, error)

	// Search 多条件组合搜索(分页)
	// 任一条件为零值时不参与过滤
	Search(ctx context.Context, params SearchParams) ([]*Book, int64, error)

	// ListLowStock 查询库存低于阈值的图书
	ListLowStock(ctx context.Context, threshold int) ([]*Book, error)

	// ListBestSellers 按订单明细累计销量倒序查询畅销图书
	ListBestSellers(ctx context.Context, limit int) ([]*Book, error)

	// LockByID 悲观锁查询图书(用于订单创建时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 更新库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// 内部会检查库存是否充足,不足则返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error

	// CountActiveByCategory 统计分类下在售图书数量
	CountActiveByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// SearchParams 组合搜索参数
// 字符串为空、数值为0时表示不按该条件过滤
type SearchParams struct {
	Keyword    string // 关键词(匹配标题、作者、ISBN任一)
	Title      string // 书名模糊匹配,与Author可独立组合
	Author     string // 作者模糊匹配
	Grade      int
	Subject    string // 学科模糊匹配
	Board      Board
	CategoryID uint
	MinPrice   int64 // 单位:派萨
	MaxPrice   int64
	Page       int // 页码(从0开始)
	Size       int // 每页数量
	SortBy     string
	SortDir    string // asc / desc
}
