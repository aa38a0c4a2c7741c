package customer

import (
	"context"
	"testing"
)

type fakeRepo struct {
	customers map[uint]*Customer
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[uint]*Customer), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, c *Customer) error {
	c.ID = f.nextID
	f.nextID++
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*Customer, error) {
	c, ok := f.customers[id]
	if !ok || !c.Active {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	for _, c := range f.customers {
		if c.Active && c.Email == email {
			return c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (f *fakeRepo) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	for _, c := range f.customers {
		if c.Active && c.Phone == phone {
			return c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (f *fakeRepo) Update(ctx context.Context, c *Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint) error {
	c, ok := f.customers[id]
	if !ok {
		return ErrCustomerNotFound
	}
	c.Deactivate()
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*Customer, error) {
	var out []*Customer
	for _, c := range f.customers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByType(ctx context.Context, t Type) ([]*Customer, error) {
	var out []*Customer
	for _, c := range f.customers {
		if c.Active && c.Type == t {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByCity(ctx context.Context, city string) ([]*Customer, error) {
	return f.List(ctx)
}

func (f *fakeRepo) Search(ctx context.Context, keyword string) ([]*Customer, error) {
	return f.List(ctx)
}

func (f *fakeRepo) ListWithOrders(ctx context.Context) ([]*Customer, error) {
	return f.List(ctx)
}

func (f *fakeRepo) ListTopBySpend(ctx context.Context, limit int) ([]*Customer, error) {
	out, _ := f.List(ctx)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeSummarizer 固定返回的订单汇总器
type fakeSummarizer struct {
	count int64
	total int64
}

func (f *fakeSummarizer) SummarizeByCustomer(ctx context.Context, id uint) (int64, int64, error) {
	return f.count, f.total, nil
}

func validCustomer() *Customer {
	return &Customer{
		Name:    "Ravi Kumar",
		Email:   "ravi.kumar@example.com",
		Phone:   "+919876543210",
		City:    "Chennai",
		Pincode: "600001",
		Type:    TypeIndividual,
	}
}

// TestCustomer_Validate 测试字段校验
func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Customer)
		wantErr error
	}{
		{"合法实体", func(c *Customer) {}, nil},
		{"缺少姓名", func(c *Customer) { c.Name = "" }, ErrNameRequired},
		{"缺少邮箱", func(c *Customer) { c.Email = "" }, ErrEmailRequired},
		{"非法邮箱", func(c *Customer) { c.Email = "not-an-email" }, ErrInvalidEmail},
		{"缺少手机号", func(c *Customer) { c.Phone = "" }, ErrPhoneRequired},
		{"手机号过短", func(c *Customer) { c.Phone = "12345" }, ErrInvalidPhone},
		{"手机号含字母", func(c *Customer) { c.Phone = "98765abc43" }, ErrInvalidPhone},
		{"未知类型", func(c *Customer) { c.Type = "VIP" }, ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(c)
			if err := c.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}
}

// TestService_CreateCustomer 测试邮箱、手机号的独立查重
func TestService_CreateCustomer(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	if _, err := svc.CreateCustomer(ctx, validCustomer()); err != nil {
		t.Fatalf("创建客户失败: %v", err)
	}

	// 邮箱重复
	dup := validCustomer()
	dup.Phone = "+919876543211"
	if _, err := svc.CreateCustomer(ctx, dup); err != ErrEmailDuplicate {
		t.Errorf("重复邮箱应返回ErrEmailDuplicate, 实际 %v", err)
	}

	// 手机号重复
	dup2 := validCustomer()
	dup2.Email = "other@example.com"
	if _, err := svc.CreateCustomer(ctx, dup2); err != ErrPhoneDuplicate {
		t.Errorf("重复手机号应返回ErrPhoneDuplicate, 实际 %v", err)
	}
}

// TestService_Availability 测试可用性检查的幂等性
func TestService_Availability(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	svc.CreateCustomer(ctx, validCustomer())

	for i := 0; i < 2; i++ {
		ok, err := svc.IsEmailAvailable(ctx, "ravi.kumar@example.com")
		if err != nil || ok {
			t.Errorf("已占用邮箱应不可用: ok=%v err=%v", ok, err)
		}
		ok, err = svc.IsEmailAvailable(ctx, "fresh@example.com")
		if err != nil || !ok {
			t.Errorf("未占用邮箱应可用: ok=%v err=%v", ok, err)
		}
		ok, err = svc.IsPhoneAvailable(ctx, "+919876543210")
		if err != nil || ok {
			t.Errorf("已占用手机号应不可用: ok=%v err=%v", ok, err)
		}
	}
}

// TestService_DeleteThenReuse 测试停用后自然键可复用
func TestService_DeleteThenReuse(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	created, _ := svc.CreateCustomer(ctx, validCustomer())
	if err := svc.DeleteCustomer(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 停用客户的邮箱、手机号可被新客户使用
	if _, err := svc.CreateCustomer(ctx, validCustomer()); err != nil {
		t.Errorf("停用后的自然键应可复用, 实际 %v", err)
	}
}

// TestService_UpdateCustomer 测试机构客户全部可修改字段的覆盖更新
func TestService_UpdateCustomer(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	created, _ := svc.CreateCustomer(ctx, validCustomer())

	in := validCustomer()
	in.Country = "India"
	in.InstitutionName = "DAV Public School"
	in.ContactPerson = "Meena Iyer"
	in.GSTNumber = "33AABCU9603R1ZM"
	in.Type = TypeSchool

	updated, err := svc.UpdateCustomer(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("更新客户失败: %v", err)
	}
	if updated.Country != "India" {
		t.Errorf("Country = %q, 期望 India", updated.Country)
	}
	if updated.InstitutionName != "DAV Public School" {
		t.Errorf("InstitutionName = %q, 期望 DAV Public School", updated.InstitutionName)
	}
	if updated.ContactPerson != "Meena Iyer" {
		t.Errorf("ContactPerson = %q, 期望 Meena Iyer", updated.ContactPerson)
	}
	if updated.GSTNumber != "33AABCU9603R1ZM" {
		t.Errorf("GSTNumber = %q, 期望 33AABCU9603R1ZM", updated.GSTNumber)
	}
	if updated.Type != TypeSchool {
		t.Errorf("Type = %q, 期望 %q", updated.Type, TypeSchool)
	}
}

// TestService_GetStats 测试订单汇总投影
func TestService_GetStats(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeSummarizer{count: 2, total: 35000})
	ctx := context.Background()

	created, _ := svc.CreateCustomer(ctx, validCustomer())
	stats, err := svc.GetStats(ctx, created.ID)
	if err != nil {
		t.Fatalf("获取汇总失败: %v", err)
	}
	if stats.TotalOrders != 2 || stats.TotalOrderValue != 35000 {
		t.Errorf("汇总结果 = %+v, 期望 {2 35000}", stats)
	}
}
