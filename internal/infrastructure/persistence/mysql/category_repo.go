package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/schoolshop/internal/domain/category"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// categoryRepository 分类仓储的MySQL实现
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func toCategoryModel(c *category.Category) *CategoryModel {
	return &CategoryModel{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Type:         string(c.Type),
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Type:         category.Type(m.Type),
		DisplayOrder: m.DisplayOrder,
		Active:       m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toCategoryEntities(models []CategoryModel) []*category.Category {
	out := make([]*category.Category, 0, len(models))
	for i := range models {
		out = append(out, toCategoryEntity(&models[i]))
	}
	return out
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "Failed to create category")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找启用的分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find category")
	}
	return toCategoryEntity(&model), nil
}

// FindByName 根据名称查找启用的分类
// BINARY强制区分大小写的精确匹配,不受列collation影响
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).Where("BINARY name = ? AND is_active = ?", name, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find category by name")
	}
	return toCategoryEntity(&model), nil
}

// Update 更新分类
func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	err := getDB(ctx, r.db).Model(&CategoryModel{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").Updates(model).Error
	if err != nil {
		return apperrors.Wrap(err, "Failed to update category")
	}
	return nil
}

// Delete 停用分类(软删除)
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&CategoryModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete category")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// List 查询全部启用分类,按展示顺序排列
func (r *categoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	err := getDB(ctx, r.db).Where("is_active = ?", true).
		Order("display_order ASC, name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list categories")
	}
	return toCategoryEntities(models), nil
}

// ListByType 按维度查询启用分类
func (r *categoryRepository) ListByType(ctx context.Context, t category.Type) ([]*category.Category, error) {
	var models []CategoryModel
	err := getDB(ctx, r.db).Where("type = ? AND is_active = ?", string(t), true).
		Order("display_order ASC, name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list categories by type")
	}
	return toCategoryEntities(models), nil
}

// ListWithActiveBooks 查询至少有一本在售图书的启用分类
func (r *categoryRepository) ListWithActiveBooks(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	err := getDB(ctx, r.db).
		Joins("JOIN books ON books.category_id = categories.id AND books.is_active = ?", true).
		Where("categories.is_active = ?", true).
		Group("categories.id").
		Order("categories.display_order ASC, categories.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list categories with books")
	}
	return toCategoryEntities(models), nil
}

// ExistsActive 判断分类是否存在且启用
func (r *categoryRepository) ExistsActive(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&CategoryModel{}).
		Where("id = ? AND is_active = ?", id, true).Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "Failed to check category existence")
	}
	return count > 0, nil
}
