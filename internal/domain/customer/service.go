package customer

import (
	"context"
)

// Stats 客户订单汇总(读取时实时计算,不落库)
type Stats struct {
	TotalOrders     int64
	TotalOrderValue int64 // 单位:派萨
}

// Service 客户领域服务接口
type Service interface {
	// CreateCustomer 创建客户
	// 业务规则:邮箱、手机号在有效客户中各自唯一
	CreateCustomer(ctx context.Context, c *Customer) (*Customer, error)

	// GetCustomerByID 根据ID获取客户
	GetCustomerByID(ctx context.Context, id uint) (*Customer, error)

	// GetCustomerByEmail 根据邮箱获取客户
	GetCustomerByEmail(ctx context.Context, email string) (*Customer, error)

	// GetCustomerByPhone 根据手机号获取客户
	GetCustomerByPhone(ctx context.Context, phone string) (*Customer, error)

	// UpdateCustomer 更新客户
	UpdateCustomer(ctx context.Context, id uint, c *Customer) (*Customer, error)

	// DeleteCustomer 停用客户
	DeleteCustomer(ctx context.Context, id uint) error

	// ListCustomers 查询全部有效客户
	ListCustomers(ctx context.Context) ([]*Customer, error)

	// ListByType 按类型查询
	ListByType(ctx context.Context, t Type) ([]*Customer, error)

	// ListByCity 按城市查询
	ListByCity(ctx context.Context, city string) ([]*Customer, error)

	// SearchCustomers 关键词搜索
	SearchCustomers(ctx context.Context, keyword string) ([]*Customer, error)

	// ListWithOrders 查询至少有一笔订单的客户
	ListWithOrders(ctx context.Context) ([]*Customer, error)

	// TopCustomers 按累计订单金额倒序查询前N位客户(limit<=0时取10)
	TopCustomers(ctx context.Context, limit int) ([]*Customer, error)

	// IsEmailAvailable 邮箱是否可用(不存在有效客户占用)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)

	// IsPhoneAvailable 手机号是否可用
	IsPhoneAvailable(ctx context.Context, phone string) (bool, error)

	// GetStats 获取客户订单汇总
	GetStats(ctx context.Context, id uint) (*Stats, error)
}

type service struct {
	repo   Repository
	orders OrderSummarizer
}

// NewService 创建客户领域服务
func NewService(repo Repository, orders OrderSummarizer) Service {
	return &service{repo: repo, orders: orders}
}

// CreateCustomer 创建客户
func (s *service) CreateCustomer(ctx context.Context, c *Customer) (*Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// 邮箱、手机号各自独立查重
	if err := s.checkEmailUnique(ctx, c.Email, 0); err != nil {
		return nil, err
	}
	if err := s.checkPhoneUnique(ctx, c.Phone, 0); err != nil {
		return nil, err
	}

	c.Active = true
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCustomerByID 根据ID获取客户
func (s *service) GetCustomerByID(ctx context.Context, id uint) (*Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// GetCustomerByEmail 根据邮箱获取客户
func (s *service) GetCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	return s.repo.FindByEmail(ctx, email)
}

// GetCustomerByPhone 根据手机号获取客户
func (s *service) GetCustomerByPhone(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.FindByPhone(ctx, phone)
}

// UpdateCustomer 更新客户
func (s *service) UpdateCustomer(ctx context.Context, id uint, c *Customer) (*Customer, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Email != existing.Email {
		if err := s.checkEmailUnique(ctx, c.Email, id); err != nil {
			return nil, err
		}
	}
	if c.Phone != existing.Phone {
		if err := s.checkPhoneUnique(ctx, c.Phone, id); err != nil {
			return nil, err
		}
	}

	existing.ApplyUpdate(c)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCustomer 停用客户
func (s *service) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListCustomers 查询全部有效客户
func (s *service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}

// ListByType 按类型查询
func (s *service) ListByType(ctx context.Context, t Type) ([]*Customer, error) {
	if _, ok := ParseType(string(t)); !ok {
		return nil, ErrInvalidType
	}
	return s.repo.ListByType(ctx, t)
}

// ListByCity 按城市查询
func (s *service) ListByCity(ctx context.Context, city string) ([]*Customer, error) {
	return s.repo.ListByCity(ctx, city)
}

// SearchCustomers 关键词搜索
func (s *service) SearchCustomers(ctx context.Context, keyword string) ([]*Customer, error) {
	return s.repo.Search(ctx, keyword)
}

// ListWithOrders 查询至少有一笔订单的客户
func (s *service) ListWithOrders(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListWithOrders(ctx)
}

// TopCustomers 按累计订单金额倒序查询前N位客户
func (s *service) TopCustomers(ctx context.Context, limit int) ([]*Customer, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListTopBySpend(ctx, limit)
}

// IsEmailAvailable 邮箱是否可用
func (s *service) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == ErrCustomerNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// IsPhoneAvailable 手机号是否可用
func (s *service) IsPhoneAvailable(ctx context.Context, phone string) (bool, error) {
	_, err := s.repo.FindByPhone(ctx, phone)
	if err == ErrCustomerNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// GetStats 读取时实时汇总客户订单
func (s *service) GetStats(ctx context.Context, id uint) (*Stats, error) {
	if s.orders == nil {
		return &Stats{}, nil
	}
	count, total, err := s.orders.SummarizeByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalOrders: count, TotalOrderValue: total}, nil
}

func (s *service) checkEmailUnique(ctx context.Context, email string, selfID uint) error {
	other, err := s.repo.FindByEmail(ctx, email)
	if err == nil && other != nil && other.ID != selfID {
		return ErrEmailDuplicate
	}
	if err != nil && err != ErrCustomerNotFound {
		return err
	}
	return nil
}

func (s *service) checkPhoneUnique(ctx context.Context, phone string, selfID uint) error {
	other, err := s.repo.FindByPhone(ctx, phone)
	if err == nil && other != nil && other.ID != selfID {
		return ErrPhoneDuplicate
	}
	if err != nil && err != ErrCustomerNotFound {
		return err
	}
	return nil
}
