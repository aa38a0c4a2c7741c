package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/schoolshop/internal/domain/order"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// OrderRepository 订单仓储的MySQL实现
// 同时实现customer.OrderSummarizer,为客户投影提供订单汇总
type OrderRepository struct {
	db *gorm.DB
}

var _ order.Repository = (*OrderRepository)(nil)

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func toOrderModel(o *order.Order) *OrderModel {
	model := &OrderModel{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DiscountAmount:  o.DiscountAmount,
		FinalAmount:     o.FinalAmount,
		OrderDate:       o.OrderDate,
		DeliveryDate:    o.DeliveryDate,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryCity:    o.DeliveryCity,
		DeliveryState:   o.DeliveryState,
		DeliveryPincode: o.DeliveryPincode,
		ContactPhone:    o.ContactPhone,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		model.Items = append(model.Items, OrderItemModel{
			ID:             item.ID,
			OrderID:        item.OrderID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: item.DiscountAmount,
			TotalPrice:     item.TotalPrice,
			BookTitle:      item.BookTitle,
			BookAuthor:     item.BookAuthor,
			BookISBN:       item.BookISBN,
			BookGrade:      item.BookGrade,
			BookSubject:    item.BookSubject,
		})
	}
	return model
}

func toOrderEntity(m *OrderModel) *order.Order {
	o := &order.Order{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		CustomerID:      m.CustomerID,
		Status:          order.Status(m.Status),
		TotalAmount:     m.TotalAmount,
		DiscountAmount:  m.DiscountAmount,
		FinalAmount:     m.FinalAmount,
		OrderDate:       m.OrderDate,
		DeliveryDate:    m.DeliveryDate,
		DeliveryAddress: m.DeliveryAddress,
		DeliveryCity:    m.DeliveryCity,
		DeliveryState:   m.DeliveryState,
		DeliveryPincode: m.DeliveryPincode,
		ContactPhone:    m.ContactPhone,
		PaymentMethod:   order.PaymentMethod(m.PaymentMethod),
		PaymentStatus:   order.PaymentStatus(m.PaymentStatus),
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, item := range m.Items {
		o.Items = append(o.Items, order.OrderItem{
			ID:             item.ID,
			OrderID:        item.OrderID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: item.DiscountAmount,
			TotalPrice:     item.TotalPrice,
			BookTitle:      item.BookTitle,
			BookAuthor:     item.BookAuthor,
			BookISBN:       item.BookISBN,
			BookGrade:      item.BookGrade,
			BookSubject:    item.BookSubject,
		})
	}
	return o
}

func toOrderEntities(models []OrderModel) []*order.Order {
	out := make([]*order.Order, 0, len(models))
	for i := range models {
		out = append(out, toOrderEntity(&models[i]))
	}
	return out
}

// Create 创建订单及其明细
// GORM会在同一语句序列中级联插入Items
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrOrderNumberConflict
		}
		return apperrors.Wrap(err, "Failed to create order")
	}
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.Items[i].OrderID
	}
	return nil
}

// FindByID 根据ID查找订单(含明细)
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find order")
	}
	return toOrderEntity(&model), nil
}

// FindByOrderNumber 根据订单号查找订单(含明细)
func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("order_number = ?", orderNumber).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find order by number")
	}
	return toOrderEntity(&model), nil
}

// ExistsByOrderNumber 判断订单号是否已存在
func (r *OrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("order_number = ?", orderNumber).Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "Failed to check order number")
	}
	return count > 0, nil
}

// Update 更新订单主记录(不改写明细)
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	err := getDB(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).
		Select("*").Omit("id", "order_number", "created_at", "Items").Updates(model).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update order")
	}
	return nil
}

// List 查询全部订单,按下单时间倒序
func (r *OrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Order("order_date DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list orders")
	}
	return toOrderEntities(models), nil
}

// ListByCustomer 查询客户的全部订单
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("customer_id = ?", customerID).
		Order("order_date DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list orders by customer")
	}
	return toOrderEntities(models), nil
}

// ListByStatus 按状态查询
func (r *OrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("status = ?", string(status)).
		Order("order_date DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list orders by status")
	}
	return toOrderEntities(models), nil
}

// ListRecent 查询最近N笔订单
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Order("order_date DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list recent orders")
	}
	return toOrderEntities(models), nil
}

// orderSortColumns API排序字段到数据库列的白名单映射
var orderSortColumns = map[string]string{
	"orderNumber": "order_number",
	"orderDate":   "order_date",
	"status":      "status",
	"finalAmount": "final_amount",
	"createdAt":   "created_at",
}

// Search 多条件组合搜索
// 日期区间按自然日对齐:起始日00:00:00到结束日23:59:59,两端含当天
func (r *OrderRepository) Search(ctx context.Context, params order.SearchParams) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{})

	if params.OrderNumber != "" {
		query = query.Where("order_number LIKE ?", likePattern(params.OrderNumber))
	}
	if params.CustomerID > 0 {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", startOfDay(*params.StartDate))
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", endOfDay(*params.EndDate))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to count orders")
	}

	column, ok := orderSortColumns[params.SortBy]
	if !ok {
		column = "order_date"
	}
	dir := "ASC"
	if params.SortDir == "desc" || params.SortBy == "" {
		dir = "DESC"
	}

	var models []OrderModel
	err := query.Preload("Items").
		Order(fmt.Sprintf("%s %s", column, dir)).
		Offset(params.Page * params.Size).Limit(params.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to search orders")
	}
	return toOrderEntities(models), total, nil
}

// SumFinalAmountByStatuses 按状态集合汇总成交金额
func (r *OrderRepository) SumFinalAmountByStatuses(ctx context.Context, statuses []order.Status) (int64, error) {
	var total int64
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("status IN ?", statusStrings(statuses)).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "Failed to sum sales")
	}
	return total, nil
}

// SumFinalAmountByDateRange 按下单日期区间汇总成交金额
func (r *OrderRepository) SumFinalAmountByDateRange(ctx context.Context, start, end time.Time, statuses []order.Status) (int64, error) {
	var total int64
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("status IN ?", statusStrings(statuses)).
		Where("order_date >= ? AND order_date <= ?", startOfDay(start), endOfDay(end)).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "Failed to sum sales by date range")
	}
	return total, nil
}

// SummarizeByCustomer 汇总客户的订单数与订单总额
// 实现customer.OrderSummarizer,客户投影读取时实时计算
func (r *OrderRepository) SummarizeByCustomer(ctx context.Context, customerID uint) (int64, int64, error) {
	type row struct {
		Count int64
		Total int64
	}
	var result row
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("customer_id = ?", customerID).
		Select("COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "Failed to summarize customer orders")
	}
	return result.Count, result.Total, nil
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// startOfDay 当日00:00:00
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay 当日23:59:59
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
