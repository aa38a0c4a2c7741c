package book

import (
	"context"
)

// CategoryChecker 分类存在性检查接口
// 由infrastructure层的分类仓储实现,避免book包直接依赖category包
type CategoryChecker interface {
	ExistsActive(ctx context.Context, categoryID uint) (bool, error)
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 新增图书
	// 业务规则:
	// - 实体字段必须通过Validate校验
	// - ISBN非空时不能重复
	// - 指定分类时分类必须存在且启用
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBook 全量更新图书信息
	UpdateBook(ctx context.Context, id uint, b *Book) (*Book, error)

	// DeleteBook 下架图书(软删除)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 查询全部在售图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// ListByGrade 按年级查询
	ListByGrade(ctx context.Context, grade int) ([]*Book, error)

	// ListBySubject 按学科查询
	ListBySubject(ctx context.Context, subject string) ([]*Book, error)

	// ListByBoard 按教育体系查询
	ListByBoard(ctx context.Context, board Board) ([]*Book, error)

	// ListByCategory 按分类查询
	ListByCategory(ctx context.Context, categoryID uint) ([]*Book, error)

	// SearchBooks 多条件组合搜索(分页)
	SearchBooks(ctx context.Context, params SearchParams) ([]*Book, int64, error)

	// ListLowStock 查询库存低于阈值的图书
	ListLowStock(ctx context.Context, threshold int) ([]*Book, error)

	// ListBestSellers 查询畅销图书
	ListBestSellers(ctx context.Context, limit int) ([]*Book, error)

	// SetStock 直接设置库存数量
	SetStock(ctx context.Context, id uint, quantity int) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo       Repository
	categories CategoryChecker
}

// NewService 创建图书领域服务
func NewService(repo Repository, categories CategoryChecker) Service {
	return &service{repo: repo, categories: categories}
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	// 1. 字段校验
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 2. ISBN查重
	if b.ISBN != "" {
		existing, err := s.repo.FindByISBN(ctx, b.ISBN)
		if err == nil && existing != nil {
			return nil, ErrISBNDuplicate
		}
		if err != nil && err != ErrBookNotFound {
			return nil, err
		}
	}

	// 3. 分类存在性校验
	if err := s.checkCategory(ctx, b.CategoryID); err != nil {
		return nil, err
	}

	// 4. 持久化
	b.Active = true
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBook 全量更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, b *Book) (*Book, error) {
	// 1. 查询图书
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 字段校验
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 3. ISBN变更时查重
	if b.ISBN != "" && b.ISBN != existing.ISBN {
		other, err := s.repo.FindByISBN(ctx, b.ISBN)
		if err == nil && other != nil && other.ID != id {
			return nil, ErrISBNDuplicate
		}
		if err != nil && err != ErrBookNotFound {
			return nil, err
		}
	}

	// 4. 分类存在性校验
	if err := s.checkCategory(ctx, b.CategoryID); err != nil {
		return nil, err
	}

	// 5. 覆盖可修改字段并持久化
	existing.ApplyUpdate(b)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBook 下架图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 查询全部在售图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

// ListByGrade 按年级查询
func (s *service) ListByGrade(ctx context.Context, grade int) ([]*Book, error) {
	if grade < 1 {
		return nil, ErrInvalidGrade
	}
	return s.repo.ListByGrade(ctx, grade)
}

// ListBySubject 按学科查询
func (s *service) ListBySubject(ctx context.Context, subject string) ([]*Book, error) {
	return s.repo.ListBySubject(ctx, subject)
}

// ListByBoard 按教育体系查询
func (s *service) ListByBoard(ctx context.Context, board Board) ([]*Book, error) {
	if _, ok := ParseBoard(string(board)); !ok {
		return nil, ErrInvalidBoard
	}
	return s.repo.ListByBoard(ctx, board)
}

// ListByCategory 按分类查询
func (s *service) ListByCategory(ctx context.Context, categoryID uint) ([]*Book, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

// SearchBooks 组合搜索
func (s *service) SearchBooks(ctx context.Context, params SearchParams) ([]*Book, int64, error) {
	if params.Page < 0 {
		params.Page = 0
	}
	if params.Size <= 0 {
		params.Size = 10
	}
	if params.Size > 100 {
		params.Size = 100
	}
	return s.repo.Search(ctx, params)
}

// ListLowStock 查询低库存图书
func (s *service) ListLowStock(ctx context.Context, threshold int) ([]*Book, error) {
	if threshold < 0 {
		threshold = 0
	}
	return s.repo.ListLowStock(ctx, threshold)
}

// ListBestSellers 查询畅销图书
func (s *service) ListBestSellers(ctx context.Context, limit int) ([]*Book, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListBestSellers(ctx, limit)
}

// SetStock 直接设置库存数量
func (s *service) SetStock(ctx context.Context, id uint, quantity int) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.SetStock(quantity); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// checkCategory 校验分类存在且启用,categoryID为0表示未分类
func (s *service) checkCategory(ctx context.Context, categoryID uint) error {
	if categoryID == 0 || s.categories == nil {
		return nil
	}
	ok, err := s.categories.ExistsActive(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}
