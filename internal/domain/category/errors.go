package category

import (
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// 分类领域错误定义
var (
	ErrCategoryNotFound = apperrors.New(apperrors.CodeNotFound, "Category not found")
	ErrNameDuplicate    = apperrors.New(apperrors.CodeConflict, "Category with this name already exists")
	ErrCategoryInUse    = apperrors.New(apperrors.CodeConflict, "Category still has active books")

	ErrNameRequired        = apperrors.New(apperrors.CodeValidation, "Name is required")
	ErrInvalidType         = apperrors.New(apperrors.CodeValidation, "Unknown category type")
	ErrInvalidDisplayOrder = apperrors.New(apperrors.CodeValidation, "Display order cannot be negative")
)
