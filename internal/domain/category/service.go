package category

import (
	"context"
)

// BookCounter 统计分类下在售图书数量
// 由图书仓储实现,避免category包依赖book包
type BookCounter interface {
	CountActiveByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// Service 分类领域服务接口
type Service interface {
	// CreateCategory 创建分类
	// 业务规则:名称在启用分类中不能重复(区分大小写)
	CreateCategory(ctx context.Context, c *Category) (*Category, error)

	// GetCategoryByID 根据ID获取分类
	GetCategoryByID(ctx context.Context, id uint) (*Category, error)

	// GetCategoryByName 根据名称获取分类(区分大小写的精确匹配)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)

	// UpdateCategory 更新分类
	UpdateCategory(ctx context.Context, id uint, c *Category) (*Category, error)

	// DeleteCategory 停用分类
	// 业务规则:分类下仍有在售图书时拒绝删除,调用方需先转移图书
	DeleteCategory(ctx context.Context, id uint) error

	// ListCategories 查询全部启用分类
	ListCategories(ctx context.Context) ([]*Category, error)

	// ListByType 按维度查询
	ListByType(ctx context.Context, t Type) ([]*Category, error)

	// ListWithBooks 查询至少有一本在售图书的分类
	ListWithBooks(ctx context.Context) ([]*Category, error)

	// IsNameAvailable 名称是否可用(不存在同名启用分类)
	IsNameAvailable(ctx context.Context, name string) (bool, error)

	// CountBooks 统计分类下在售图书数量
	CountBooks(ctx context.Context, id uint) (int64, error)
}

type service struct {
	repo  Repository
	books BookCounter
}

// NewService 创建分类领域服务
func NewService(repo Repository, books BookCounter) Service {
	return &service{repo: repo, books: books}
}

// CreateCategory 创建分类
func (s *service) CreateCategory(ctx context.Context, c *Category) (*Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// 名称查重
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err == nil && existing != nil {
		return nil, ErrNameDuplicate
	}
	if err != nil && err != ErrCategoryNotFound {
		return nil, err
	}

	c.Active = true
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryByID 根据ID获取分类
func (s *service) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

// GetCategoryByName 根据名称获取分类
func (s *service) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	return s.repo.FindByName(ctx, name)
}

// UpdateCategory 更新分类
func (s *service) UpdateCategory(ctx context.Context, id uint, c *Category) (*Category, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	// 名称变更时查重
	if c.Name != existing.Name {
		other, err := s.repo.FindByName(ctx, c.Name)
		if err == nil && other != nil && other.ID != id {
			return nil, ErrNameDuplicate
		}
		if err != nil && err != ErrCategoryNotFound {
			return nil, err
		}
	}

	existing.ApplyUpdate(c)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCategory 停用分类
// 应用层完整性检查:有在售图书引用的分类不能删除
func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if s.books != nil {
		count, err := s.books.CountActiveByCategory(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
	}

	return s.repo.Delete(ctx, id)
}

// ListCategories 查询全部启用分类
func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// ListByType 按维度查询
func (s *service) ListByType(ctx context.Context, t Type) ([]*Category, error) {
	if _, ok := ParseType(string(t)); !ok {
		return nil, ErrInvalidType
	}
	return s.repo.ListByType(ctx, t)
}

// ListWithBooks 查询至少有一本在售图书的分类
func (s *service) ListWithBooks(ctx context.Context) ([]*Category, error) {
	return s.repo.ListWithActiveBooks(ctx)
}

// IsNameAvailable 名称是否可用
func (s *service) IsNameAvailable(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.FindByName(ctx, name)
	if err == ErrCategoryNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CountBooks 统计分类下在售图书数量
func (s *service) CountBooks(ctx context.Context, id uint) (int64, error) {
	if s.books == nil {
		return 0, nil
	}
	return s.books.CountActiveByCategory(ctx, id)
}
