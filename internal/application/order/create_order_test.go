package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/schoolshop/internal/domain/book"
	"github.com/xiebiao/schoolshop/internal/domain/customer"
	"github.com/xiebiao/schoolshop/internal/domain/order"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// fakeTxManager 直接执行fn的事务替身
type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBookRepo 内存图书仓储
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (f *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }
func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok || !b.Active {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (f *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (f *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (f *fakeBookRepo) List(ctx context.Context) ([]*book.Book, error) { return nil, nil }
func (f *fakeBookRepo) ListByGrade(ctx context.Context, grade int) ([]*book.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) ListBySubject(ctx context.Context, subject string) ([]*book.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) ListByBoard(ctx context.Context, b book.Board) ([]*book.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) ListByCategory(ctx context.Context, id uint) ([]*book.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) Search(ctx context.Context, p book.SearchParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}
func (f *fakeBookRepo) ListLowStock(ctx context.Context, threshold int) ([]*book.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) ListBestSellers(ctx context.Context, limit int) ([]*book.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return f.FindByID(ctx, id)
}
func (f *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	// 扣减要求图书在售,回补对已下架图书同样生效
	b, ok := f.books[id]
	if !ok || (delta < 0 && !b.Active) {
		return book.ErrBookNotFound
	}
	if b.Quantity+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}
func (f *fakeBookRepo) CountActiveByCategory(ctx context.Context, id uint) (int64, error) {
	return 0, nil
}

// fakeCustomerRepo 内存客户仓储
type fakeCustomerRepo struct {
	customers map[uint]*customer.Customer
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}
func (f *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return nil, customer.ErrCustomerNotFound
}
func (f *fakeCustomerRepo) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return nil, customer.ErrCustomerNotFound
}
func (f *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(ctx context.Context, id uint) error              { return nil }
func (f *fakeCustomerRepo) List(ctx context.Context) ([]*customer.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) ListByType(ctx context.Context, t customer.Type) ([]*customer.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) ListByCity(ctx context.Context, city string) ([]*customer.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Search(ctx context.Context, keyword string) ([]*customer.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) ListWithOrders(ctx context.Context) ([]*customer.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) ListTopBySpend(ctx context.Context, limit int) ([]*customer.Customer, error) {
	return nil, nil
}

// fakeOrderRepo 内存订单仓储
type fakeOrderRepo struct {
	orders   map[uint]*order.Order
	byNumber map[string]*order.Order
	nextID   uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[uint]*order.Order),
		byNumber: make(map[string]*order.Order),
		nextID:   1,
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if _, exists := f.byNumber[o.OrderNumber]; exists {
		return order.ErrOrderNumberConflict
	}
	o.ID = f.nextID
	f.nextID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	f.orders[o.ID] = o
	f.byNumber[o.OrderNumber] = o
	return nil
}
func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
func (f *fakeOrderRepo) FindByOrderNumber(ctx context.Context, n string) (*order.Order, error) {
	o, ok := f.byNumber[n]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
func (f *fakeOrderRepo) ExistsByOrderNumber(ctx context.Context, n string) (bool, error) {
	_, ok := f.byNumber[n]
	return ok, nil
}
func (f *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error {
	f.orders[o.ID] = o
	return nil
}
func (f *fakeOrderRepo) List(ctx context.Context) ([]*order.Order, error) { return nil, nil }
func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, id uint) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByStatus(ctx context.Context, s order.Status) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) Search(ctx context.Context, p order.SearchParams) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (f *fakeOrderRepo) SumFinalAmountByStatuses(ctx context.Context, statuses []order.Status) (int64, error) {
	var total int64
	for _, o := range f.orders {
		for _, s := range statuses {
			if o.Status == s {
				total += o.FinalAmount
			}
		}
	}
	return total, nil
}
func (f *fakeOrderRepo) SumFinalAmountByDateRange(ctx context.Context, start, end time.Time, statuses []order.Status) (int64, error) {
	return 0, nil
}

func testBook(id uint, price int64, quantity int) *book.Book {
	return &book.Book{
		ID:       id,
		Title:    "Mathematics for Class 10",
		Author:   "R.D. Sharma",
		Price:    price,
		MRP:      price,
		Quantity: quantity,
		Grade:    10,
		Subject:  "Mathematics",
		Board:    book.BoardCBSE,
		ISBN:     "9789352530243",
		Active:   true,
	}
}

func newCreateFixture() (*CreateOrderUseCase, *fakeBookRepo, *fakeOrderRepo) {
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{
		1: testBook(1, 45000, 5),
		2: testBook(2, 32000, 10),
	}}
	customerRepo := &fakeCustomerRepo{customers: map[uint]*customer.Customer{
		1: {ID: 1, Name: "Ravi Kumar", Active: true},
	}}
	orderRepo := newFakeOrderRepo()
	uc := NewCreateOrderUseCase(orderRepo, bookRepo, customerRepo, fakeTxManager{})
	return uc, bookRepo, orderRepo
}

// TestCreateOrder_Success 测试正常下单流程
func TestCreateOrder_Success(t *testing.T) {
	uc, bookRepo, _ := newCreateFixture()

	o, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Items: []CreateOrderItem{
			{BookID: 1, Quantity: 3},
			{BookID: 2, Quantity: 2},
		},
		ContactPhone:  "+919876543210",
		PaymentMethod: order.PaymentUPI,
	})
	require.NoError(t, err)

	// 订单号与初始状态
	assert.Regexp(t, `^ORD\d{14}(\d{1,3})?$`, o.OrderNumber)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, "+919876543210", o.ContactPhone)

	// 金额:3*45000 + 2*32000 = 199000
	assert.Equal(t, int64(199000), o.TotalAmount)
	assert.Equal(t, int64(0), o.DiscountAmount)
	assert.Equal(t, int64(199000), o.FinalAmount)

	// 明细快照
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Mathematics for Class 10", o.Items[0].BookTitle)
	assert.Equal(t, int64(45000), o.Items[0].UnitPrice)

	// 库存扣减
	assert.Equal(t, 2, bookRepo.books[1].Quantity)
	assert.Equal(t, 8, bookRepo.books[2].Quantity)
}

// TestCreateOrder_InsufficientStock 库存不足时拒绝下单且不留痕
// 错误信息必须指明是哪本书不够以及相差多少
func TestCreateOrder_InsufficientStock(t *testing.T) {
	uc, bookRepo, orderRepo := newCreateFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 99}},
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "Mathematics for Class 10")
	assert.Contains(t, appErr.Message, "Available: 5")
	assert.Contains(t, appErr.Message, "Requested: 99")

	// 库存未动,订单未创建
	assert.Equal(t, 5, bookRepo.books[1].Quantity)
	assert.Empty(t, orderRepo.orders)
}

// TestCreateOrder_Validation 测试参数校验
func TestCreateOrder_Validation(t *testing.T) {
	uc, _, _ := newCreateFixture()
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateOrderRequest{CustomerID: 1})
	assert.ErrorIs(t, err, order.ErrEmptyItems)

	_, err = uc.Execute(ctx, CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)

	_, err = uc.Execute(ctx, CreateOrderRequest{
		CustomerID:    1,
		Items:         []CreateOrderItem{{BookID: 1, Quantity: 1}},
		PaymentMethod: "BARTER",
	})
	assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
}

// TestCreateOrder_CustomerNotFound 客户不存在
func TestCreateOrder_CustomerNotFound(t *testing.T) {
	uc, _, _ := newCreateFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 99,
		Items:      []CreateOrderItem{{BookID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

// TestCreateOrder_BookNotFound 图书不存在
func TestCreateOrder_BookNotFound(t *testing.T) {
	uc, _, _ := newCreateFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Items:      []CreateOrderItem{{BookID: 77, Quantity: 1}},
	})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}
