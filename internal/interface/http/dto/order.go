package dto

import (
	apporder "github.com/xiebiao/schoolshop/internal/application/order"
	"github.com/xiebiao/schoolshop/internal/domain/order"
)

// CreateOrderRequest HTTP下单请求
type CreateOrderRequest struct {
	CustomerID      uint                     `json:"customer_id" binding:"required"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string                   `json:"delivery_address" binding:"max=500"`
	DeliveryCity    string                   `json:"delivery_city" binding:"max=50"`
	DeliveryState   string                   `json:"delivery_state" binding:"max=50"`
	DeliveryPincode string                   `json:"delivery_pincode" binding:"max=10"`
	ContactPhone    string                   `json:"contact_phone" binding:"max=20"`
	PaymentMethod   string                   `json:"payment_method"`
	Notes           string                   `json:"notes" binding:"max=500"`
}

// CreateOrderItemRequest 下单明细项
type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999"`
}

// ToUseCaseRequest 转用例请求
func (r *CreateOrderRequest) ToUseCaseRequest() apporder.CreateOrderRequest {
	items := make([]apporder.CreateOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, apporder.CreateOrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}
	return apporder.CreateOrderRequest{
		CustomerID:      r.CustomerID,
		Items:           items,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryCity:    r.DeliveryCity,
		DeliveryState:   r.DeliveryState,
		DeliveryPincode: r.DeliveryPincode,
		ContactPhone:    r.ContactPhone,
		PaymentMethod:   order.PaymentMethod(r.PaymentMethod),
		Notes:           r.Notes,
	}
}

// OrderItemResponse HTTP订单明细响应
// 图书字段来自下单时的快照
type OrderItemResponse struct {
	ID              uint   `json:"id"`
	BookID          uint   `json:"book_id"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unit_price"`
	UnitPriceRupees string `json:"unit_price_rupees"`
	DiscountAmount  int64  `json:"discount_amount"`
	TotalPrice      int64  `json:"total_price"`
	TotalRupees     string `json:"total_rupees"`
	BookTitle       string `json:"book_title"`
	BookAuthor      string `json:"book_author"`
	BookISBN        string `json:"book_isbn"`
	BookGrade       int    `json:"book_grade"`
	BookSubject     string `json:"book_subject"`
}

// OrderResponse HTTP订单响应
type OrderResponse struct {
	ID                uint                `json:"id"`
	OrderNumber       string              `json:"order_number"`
	CustomerID        uint                `json:"customer_id"`
	Status            string              `json:"status"`
	TotalAmount       int64               `json:"total_amount"`
	TotalRupees       string              `json:"total_rupees"`
	DiscountAmount    int64               `json:"discount_amount"`
	FinalAmount       int64               `json:"final_amount"`
	FinalRupees       string              `json:"final_rupees"`
	OrderDate         string              `json:"order_date"`
	DeliveryDate      string              `json:"delivery_date"`
	DeliveryAddress   string              `json:"delivery_address"`
	DeliveryCity      string              `json:"delivery_city"`
	DeliveryState     string              `json:"delivery_state"`
	DeliveryPincode   string              `json:"delivery_pincode"`
	ContactPhone      string              `json:"contact_phone"`
	PaymentMethod     string              `json:"payment_method"`
	PaymentStatus     string              `json:"payment_status"`
	Notes             string              `json:"notes"`
	Items             []OrderItemResponse `json:"items"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
}

// FromOrder 领域实体转响应
func FromOrder(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:              item.ID,
			BookID:          item.BookID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			UnitPriceRupees: FormatPriceRupees(item.UnitPrice),
			DiscountAmount:  item.DiscountAmount,
			TotalPrice:      item.TotalPrice,
			TotalRupees:     FormatPriceRupees(item.TotalPrice),
			BookTitle:       item.BookTitle,
			BookAuthor:      item.BookAuthor,
			BookISBN:        item.BookISBN,
			BookGrade:       item.BookGrade,
			BookSubject:     item.BookSubject,
		})
	}
	return &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		TotalRupees:     FormatPriceRupees(o.TotalAmount),
		DiscountAmount:  o.DiscountAmount,
		FinalAmount:     o.FinalAmount,
		FinalRupees:     FormatPriceRupees(o.FinalAmount),
		OrderDate:       formatTime(o.OrderDate),
		DeliveryDate:    formatTimePtr(o.DeliveryDate),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryCity:    o.DeliveryCity,
		DeliveryState:   o.DeliveryState,
		DeliveryPincode: o.DeliveryPincode,
		ContactPhone:    o.ContactPhone,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       formatTime(o.CreatedAt),
		UpdatedAt:       formatTime(o.UpdatedAt),
	}
}

// FromOrders 批量转换
func FromOrders(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

// UpdateOrderStatusRequest HTTP订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"CONFIRMED"`
}

// UpdatePaymentStatusRequest HTTP支付状态更新请求
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required" example:"PAID"`
}

// SearchOrdersRequest HTTP订单搜索请求(query参数)
type SearchOrdersRequest struct {
	OrderNumber   string `form:"orderNumber"`
	CustomerID    uint   `form:"customerId"`
	Status        string `form:"status"`
	StartDate     string `form:"startDate"` // ISO日期,如2026-09-01
	EndDate       string `form:"endDate"`
	Page          int    `form:"page" binding:"min=0"`
	Size          int    `form:"size" binding:"omitempty,min=1,max=100"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection" binding:"omitempty,oneof=asc desc"`
}

// SalesResponse 销售统计响应
type SalesResponse struct {
	TotalSales       int64  `json:"total_sales"`
	TotalSalesRupees string `json:"total_sales_rupees"`
}
