package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/schoolshop/internal/domain/category"
	"github.com/xiebiao/schoolshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
	"github.com/xiebiao/schoolshop/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	svc category.Service
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误/名称重复"
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	created, err := h.svc.CreateCategory(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromCategory(created), "Category created successfully")
}

// GetCategory 查询分类详情
// @Summary      查询分类详情
// @Description  返回值附带分类下在售图书数量
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	cat, err := h.svc.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 详情接口才统计图书数,列表接口不做N+1查询
	count, err := h.svc.CountBooks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.FromCategory(cat)
	resp.BookCount = &count
	response.Success(c, resp, "Category retrieved successfully")
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误/名称重复"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	updated, err := h.svc.UpdateCategory(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCategory(updated), "Category updated successfully")
}

// DeleteCategory 停用分类
// @Summary      停用分类
// @Description  分类下仍有在售图书时拒绝删除
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "分类下仍有图书"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "Category deleted successfully")
}

// ListCategories 查询全部启用分类
// @Summary      查询全部启用分类
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCategories(categories), "Categories retrieved successfully")
}

// GetCategoryByName 按名称查询分类
// @Summary      按名称查询分类
// @Description  名称区分大小写的精确匹配
// @Tags         分类
// @Produce      json
// @Param        name path string true "分类名称"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/categories/name/{name} [get]
func (h *CategoryHandler) GetCategoryByName(c *gin.Context) {
	cat, err := h.svc.GetCategoryByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCategory(cat), "Category retrieved successfully")
}

// ListWithBooks 查询有在售图书的分类
// @Summary      查询有在售图书的分类
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/categories/with-books [get]
func (h *CategoryHandler) ListWithBooks(c *gin.Context) {
	categories, err := h.svc.ListWithBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCategories(categories), "Categories retrieved successfully")
}

// CheckName 检查分类名称是否可用
// @Summary      检查分类名称是否可用
// @Tags         分类
// @Produce      json
// @Param        name query string true "分类名称"
// @Success      200 {object} response.Response{data=dto.AvailabilityResponse}
// @Router       /api/categories/check-name [get]
func (h *CategoryHandler) CheckName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, apperrors.New(apperrors.CodeValidation, "Name is required"))
		return
	}

	available, err := h.svc.IsNameAvailable(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.AvailabilityResponse{Available: available}, "Name availability checked")
}

// ListByType 按维度查询分类
// @Summary      按维度查询分类
// @Tags         分类
// @Produce      json
// @Param        type path string true "分类维度" Enums(GRADE_LEVEL, SUBJECT, BOOK_TYPE, BOARD, LANGUAGE)
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Failure      400 {object} response.Response "维度无效"
// @Router       /api/categories/type/{type} [get]
func (h *CategoryHandler) ListByType(c *gin.Context) {
	t, ok := category.ParseType(c.Param("type"))
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid category type: %s", c.Param("type")))
		return
	}

	categories, err := h.svc.ListByType(c.Request.Context(), t)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCategories(categories), "Categories retrieved successfully")
}
