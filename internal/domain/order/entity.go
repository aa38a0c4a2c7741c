package order

import (
	"time"

	"github.com/xiebiao/schoolshop/internal/domain/book"
)

// Status 订单状态
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusReturned   Status = "RETURNED"
)

// ParseStatus 解析订单状态,未知值返回false
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusReturned:
		return Status(s), true
	}
	return "", false
}

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentOnline         PaymentMethod = "ONLINE_PAYMENT"
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentUPI            PaymentMethod = "UPI"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard      PaymentMethod = "DEBIT_CARD"
)

// ParsePaymentMethod 解析支付方式,未知值返回false
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCashOnDelivery, PaymentOnline, PaymentBankTransfer,
		PaymentUPI, PaymentCreditCard, PaymentDebitCard:
		return PaymentMethod(s), true
	}
	return "", false
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
)

// ParsePaymentStatus 解析支付状态,未知值返回false
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusPartial:
		return PaymentStatus(s), true
	}
	return "", false
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. OrderItem是聚合内的子实体,必须通过Order访问
// 2. 金额冗余存储(FinalAmount = TotalAmount - DiscountAmount)
// 3. 订单不做物理删除,取消是状态转换
type Order struct {
	ID              uint
	OrderNumber     string // 业务主键,全局唯一
	CustomerID      uint
	Status          Status
	TotalAmount     int64 // 派萨
	DiscountAmount  int64
	FinalAmount     int64
	OrderDate       time.Time
	DeliveryDate    *time.Time
	DeliveryAddress string
	DeliveryCity    string
	DeliveryState   string
	DeliveryPincode string
	ContactPhone    string
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Notes           string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细项
// 下单时快照图书的价格与元数据,图书后续变更不影响历史订单展示
type OrderItem struct {
	ID             uint
	OrderID        uint
	BookID         uint
	Quantity       int
	UnitPrice      int64 // 下单时单价(派萨)
	DiscountAmount int64
	TotalPrice     int64
	BookTitle      string
	BookAuthor     string
	BookISBN       string
	BookGrade      int
	BookSubject    string
}

// NewItemFromBook 从图书快照生成订单明细
func NewItemFromBook(b *book.Book, quantity int) OrderItem {
	return OrderItem{
		BookID:      b.ID,
		Quantity:    quantity,
		UnitPrice:   b.Price,
		TotalPrice:  b.Price * int64(quantity),
		BookTitle:   b.Title,
		BookAuthor:  b.Author,
		BookISBN:    b.ISBN,
		BookGrade:   b.Grade,
		BookSubject: b.Subject,
	}
}

// CalculateTotal 按明细实时汇总订单金额
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	return total
}

// SetTotals 写入金额并维护FinalAmount不变式
func (o *Order) SetTotals(total, discount int64) {
	o.TotalAmount = total
	o.DiscountAmount = discount
	o.FinalAmount = total - discount
	o.UpdatedAt = time.Now()
}

// CanCancel 是否允许取消
// 已送达、已取消、已退货的订单不可取消
func (o *Order) CanCancel() bool {
	switch o.Status {
	case StatusDelivered, StatusCancelled, StatusReturned:
		return false
	}
	return true
}

// MarkCancelled 置为已取消
func (o *Order) MarkCancelled() error {
	if !o.CanCancel() {
		return ErrOrderNotCancellable
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// SetStatus 更新订单状态
// 置为DELIVERED时记录送达时间
func (o *Order) SetStatus(target Status) error {
	if _, ok := ParseStatus(string(target)); !ok {
		return ErrInvalidStatus
	}
	o.Status = target
	if target == StatusDelivered && o.DeliveryDate == nil {
		now := time.Now()
		o.DeliveryDate = &now
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetPaymentStatus 更新支付状态
func (o *Order) SetPaymentStatus(target PaymentStatus) error {
	if _, ok := ParsePaymentStatus(string(target)); !ok {
		return ErrInvalidPaymentStatus
	}
	o.PaymentStatus = target
	o.UpdatedAt = time.Now()
	return nil
}
