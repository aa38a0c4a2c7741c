package category

import (
	"context"
	"testing"
)

type fakeRepo struct {
	categories map[uint]*Category
	nextID     uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{categories: make(map[uint]*Category), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, c *Category) error {
	c.ID = f.nextID
	f.nextID++
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*Category, error) {
	c, ok := f.categories[id]
	if !ok || !c.Active {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeRepo) FindByName(ctx context.Context, name string) (*Category, error) {
	for _, c := range f.categories {
		if c.Active && c.Name == name {
			return c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (f *fakeRepo) Update(ctx context.Context, c *Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint) error {
	c, ok := f.categories[id]
	if !ok {
		return ErrCategoryNotFound
	}
	c.Deactivate()
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*Category, error) {
	var out []*Category
	for _, c := range f.categories {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByType(ctx context.Context, t Type) ([]*Category, error) {
	var out []*Category
	for _, c := range f.categories {
		if c.Active && c.Type == t {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWithActiveBooks(ctx context.Context) ([]*Category, error) {
	return f.List(ctx)
}

func (f *fakeRepo) ExistsActive(ctx context.Context, id uint) (bool, error) {
	c, ok := f.categories[id]
	return ok && c.Active, nil
}

// fakeBookCounter 固定计数的图书统计器
type fakeBookCounter struct {
	counts map[uint]int64
}

func (f *fakeBookCounter) CountActiveByCategory(ctx context.Context, id uint) (int64, error) {
	return f.counts[id], nil
}

func validCategory() *Category {
	return &Category{
		Name:         "Class 10",
		Description:  "Books for grade 10 students",
		Type:         TypeGradeLevel,
		DisplayOrder: 1,
	}
}

// TestService_CreateCategory 测试创建分类的名称唯一性规则
func TestService_CreateCategory(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, validCategory())
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if created.ID == 0 || !created.Active {
		t.Errorf("创建结果异常: %+v", created)
	}

	// 名称重复(区分大小写的精确匹配)
	if _, err := svc.CreateCategory(ctx, validCategory()); err != ErrNameDuplicate {
		t.Errorf("重名应返回ErrNameDuplicate, 实际 %v", err)
	}

	// 大小写不同视为不同名称
	upper := validCategory()
	upper.Name = "CLASS 10"
	if _, err := svc.CreateCategory(ctx, upper); err != nil {
		t.Errorf("大小写不同的名称应允许创建, 实际 %v", err)
	}

	// 未知维度
	bad := validCategory()
	bad.Name = "Misc"
	bad.Type = "COLOR"
	if _, err := svc.CreateCategory(ctx, bad); err != ErrInvalidType {
		t.Errorf("未知维度应返回ErrInvalidType, 实际 %v", err)
	}
}

// TestService_DeleteCategory 测试删除前的图书引用检查
func TestService_DeleteCategory(t *testing.T) {
	repo := newFakeRepo()
	counter := &fakeBookCounter{counts: map[uint]int64{}}
	svc := NewService(repo, counter)
	ctx := context.Background()

	created, _ := svc.CreateCategory(ctx, validCategory())

	// 有在售图书时拒绝删除
	counter.counts[created.ID] = 3
	if err := svc.DeleteCategory(ctx, created.ID); err != ErrCategoryInUse {
		t.Errorf("有图书引用时应返回ErrCategoryInUse, 实际 %v", err)
	}

	// 无在售图书时删除成功
	counter.counts[created.ID] = 0
	if err := svc.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.GetCategoryByID(ctx, created.ID); err != ErrCategoryNotFound {
		t.Errorf("停用分类应不可见, 实际 %v", err)
	}
}

// TestService_UpdateCategory 测试更新时的重名检查
func TestService_UpdateCategory(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	first, _ := svc.CreateCategory(ctx, validCategory())
	second := validCategory()
	second.Name = "Class 9"
	svc.CreateCategory(ctx, second)

	// 改成已存在的名称
	in := validCategory()
	in.Name = "Class 9"
	if _, err := svc.UpdateCategory(ctx, first.ID, in); err != ErrNameDuplicate {
		t.Errorf("更新为重名应返回ErrNameDuplicate, 实际 %v", err)
	}

	// 保持原名更新其他字段
	in2 := validCategory()
	in2.Description = "Updated"
	updated, err := svc.UpdateCategory(ctx, first.ID, in2)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Description != "Updated" {
		t.Errorf("描述未更新: %+v", updated)
	}
}
