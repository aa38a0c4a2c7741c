package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/schoolshop/internal/domain/customer"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// customerRepository 客户仓储的MySQL实现
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

func toCustomerModel(c *customer.Customer) *CustomerModel {
	return &CustomerModel{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		City:            c.City,
		State:           c.State,
		Pincode:         c.Pincode,
		Country:         c.Country,
		InstitutionName: c.InstitutionName,
		ContactPerson:   c.ContactPerson,
		GSTNumber:       c.GSTNumber,
		CustomerType:    string(c.Type),
		IsActive:        c.Active,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toCustomerEntity(m *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		Pincode:         m.Pincode,
		Country:         m.Country,
		InstitutionName: m.InstitutionName,
		ContactPerson:   m.ContactPerson,
		GSTNumber:       m.GSTNumber,
		Type:            customer.Type(m.CustomerType),
		Active:          m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toCustomerEntities(models []CustomerModel) []*customer.Customer {
	out := make([]*customer.Customer, 0, len(models))
	for i := range models {
		out = append(out, toCustomerEntity(&models[i]))
	}
	return out
}

// Create 创建客户
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := toCustomerModel(c)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "Failed to create customer")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找有效客户
func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find customer")
	}
	return toCustomerEntity(&model), nil
}

// FindByEmail 根据邮箱查找有效客户
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("email = ? AND is_active = ?", email, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find customer by email")
	}
	return toCustomerEntity(&model), nil
}

// FindByPhone 根据手机号查找有效客户
func (r *customerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("phone = ? AND is_active = ?", phone, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find customer by phone")
	}
	return toCustomerEntity(&model), nil
}

// Update 更新客户
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := toCustomerModel(c)
	err := getDB(ctx, r.db).Model(&CustomerModel{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").Updates(model).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update customer")
	}
	return nil
}

// Delete 停用客户(软删除)
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&CustomerModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete customer")
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// List 查询全部有效客户
func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var models []CustomerModel
	err := getDB(ctx, r.db).Where("is_active = ?", true).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list customers")
	}
	return toCustomerEntities(models), nil
}

// ListByType 按客户类型查询
func (r *customerRepository) ListByType(ctx context.Context, t customer.Type) ([]*customer.Customer, error) {
	var models []CustomerModel
	err := getDB(ctx, r.db).Where("customer_type = ? AND is_active = ?", string(t), true).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list customers by type")
	}
	return toCustomerEntities(models), nil
}

// ListByCity 按城市查询
func (r *customerRepository) ListByCity(ctx context.Context, city string) ([]*customer.Customer, error) {
	var models []CustomerModel
	err := getDB(ctx, r.db).Where("city = ? AND is_active = ?", city, true).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list customers by city")
	}
	return toCustomerEntities(models), nil
}

// Search 关键词搜索(匹配姓名、邮箱、手机号、机构名)
func (r *customerRepository) Search(ctx context.Context, keyword string) ([]*customer.Customer, error) {
	like := likePattern(keyword)
	var models []CustomerModel
	err := getDB(ctx, r.db).
		Where("is_active = ?", true).
		Where("name LIKE ? OR email LIKE ? OR phone LIKE ? OR institution_name LIKE ?", like, like, like, like).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to search customers")
	}
	return toCustomerEntities(models), nil
}

// ListWithOrders 查询至少有一笔订单的有效客户
func (r *customerRepository) ListWithOrders(ctx context.Context) ([]*customer.Customer, error) {
	var models []CustomerModel
	err := getDB(ctx, r.db).
		Joins("JOIN orders ON orders.customer_id = customers.id").
		Where("customers.is_active = ?", true).
		Group("customers.id").
		Order("customers.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list customers with orders")
	}
	return toCustomerEntities(models), nil
}

// ListTopBySpend 按累计订单金额倒序查询前N位有效客户
func (r *customerRepository) ListTopBySpend(ctx context.Context, limit int) ([]*customer.Customer, error) {
	var models []CustomerModel
	err := getDB(ctx, r.db).
		Joins("JOIN orders ON orders.customer_id = customers.id").
		Where("customers.is_active = ?", true).
		Group("customers.id").
		Order("SUM(orders.final_amount) DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list top customers")
	}
	return toCustomerEntities(models), nil
}
