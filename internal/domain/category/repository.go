package category

import (
	"context"
)

// Repository 分类仓储接口
// 由domain层定义,infrastructure层实现
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, c *Category) error

	// FindByID 根据ID查找分类(仅返回启用的分类)
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByName 根据名称查找启用的分类(区分大小写的精确匹配)
	FindByName(ctx context.Context, name string) (*Category, error)

	// Update 更新分类
	Update(ctx context.Context, c *Category) error

	// Delete 停用分类(软删除)
	Delete(ctx context.Context, id uint) error

	// List 查询全部启用的分类,按DisplayOrder升序
	List(ctx context.Context) ([]*Category, error)

	// ListByType 按维度查询启用的分类
	ListByType(ctx context.Context, t Type) ([]*Category, error)

	// ListWithActiveBooks 查询至少有一本在售图书的启用分类
	ListWithActiveBooks(ctx context.Context) ([]*Category, error)

	// ExistsActive 判断分类是否存在且启用
	ExistsActive(ctx context.Context, id uint) (bool, error)
}
