package dto

import (
	"github.com/xiebiao/schoolshop/internal/domain/customer"
)

// CustomerRequest HTTP客户创建/更新请求
type CustomerRequest struct {
	Name            string `json:"name" binding:"required,max=100" example:"Ravi Kumar"`
	Email           string `json:"email" binding:"required,email,max=100"`
	Phone           string `json:"phone" binding:"required,max=20" example:"+919876543210"`
	Address         string `json:"address" binding:"max=500"`
	City            string `json:"city" binding:"max=50" example:"Chennai"`
	State           string `json:"state" binding:"max=50"`
	Pincode         string `json:"pincode" binding:"max=10" example:"600001"`
	Country         string `json:"country" binding:"max=50" example:"India"`
	InstitutionName string `json:"institution_name" binding:"max=200"`
	ContactPerson   string `json:"contact_person" binding:"max=100"`
	GSTNumber       string `json:"gst_number" binding:"max=20"`
	Type            string `json:"customer_type" binding:"required" example:"INDIVIDUAL"`
}

// ToEntity 转领域实体
func (r *CustomerRequest) ToEntity() *customer.Customer {
	return &customer.Customer{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		Pincode:         r.Pincode,
		Country:         r.Country,
		InstitutionName: r.InstitutionName,
		ContactPerson:   r.ContactPerson,
		GSTNumber:       r.GSTNumber,
		Type:            customer.Type(r.Type),
	}
}

// CustomerResponse HTTP客户响应
// 订单汇总字段仅在查询单个客户时实时计算填充
type CustomerResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Pincode         string  `json:"pincode"`
	Country         string  `json:"country"`
	InstitutionName string  `json:"institution_name"`
	ContactPerson   string  `json:"contact_person"`
	GSTNumber       string  `json:"gst_number"`
	Type            string  `json:"customer_type"`
	TotalOrders     *int64  `json:"total_orders,omitempty"`
	TotalOrderValue *string `json:"total_order_value,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// FromCustomer 领域实体转响应
func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
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
		Type:            string(c.Type),
		CreatedAt:       formatTime(c.CreatedAt),
		UpdatedAt:       formatTime(c.UpdatedAt),
	}
}

// WithStats 填充订单汇总
func (r *CustomerResponse) WithStats(stats *customer.Stats) *CustomerResponse {
	total := FormatPriceRupees(stats.TotalOrderValue)
	r.TotalOrders = &stats.TotalOrders
	r.TotalOrderValue = &total
	return r
}

// FromCustomers 批量转换
func FromCustomers(customers []*customer.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, FromCustomer(c))
	}
	return out
}

// AvailabilityResponse 自然键可用性检查响应
type AvailabilityResponse struct {
	Available bool `json:"available"`
}
