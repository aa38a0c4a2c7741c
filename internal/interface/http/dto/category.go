package dto

import (
	"github.com/xiebiao/schoolshop/internal/domain/category"
)

// CategoryRequest HTTP分类创建/更新请求
type CategoryRequest struct {
	Name         string `json:"name" binding:"required,max=100" example:"Class 10"`
	Description  string `json:"description" binding:"max=500"`
	Type         string `json:"type" binding:"required" example:"GRADE_LEVEL"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// ToEntity 转领域实体
func (r *CategoryRequest) ToEntity() *category.Category {
	return &category.Category{
		Name:         r.Name,
		Description:  r.Description,
		Type:         category.Type(r.Type),
		DisplayOrder: r.DisplayOrder,
	}
}

// CategoryResponse HTTP分类响应
// BookCount仅在查询单个分类时填充
type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	DisplayOrder int    `json:"display_order"`
	BookCount    *int64 `json:"book_count,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// FromCategory 领域实体转响应
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Type:         string(c.Type),
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
}

// FromCategories 批量转换
func FromCategories(categories []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromCategory(c))
	}
	return out
}
