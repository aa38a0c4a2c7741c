package book

import (
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound      = apperrors.New(apperrors.CodeNotFound, "Book not found")
	ErrCategoryNotFound  = apperrors.New(apperrors.CodeNotFound, "Category not found")
	ErrISBNDuplicate     = apperrors.New(apperrors.CodeConflict, "Book with this ISBN already exists")
	ErrInsufficientStock = apperrors.New(apperrors.CodeConflict, "Insufficient stock")

	ErrTitleRequired   = apperrors.New(apperrors.CodeValidation, "Title is required")
	ErrAuthorRequired  = apperrors.New(apperrors.CodeValidation, "Author is required")
	ErrSubjectRequired = apperrors.New(apperrors.CodeValidation, "Subject is required")
	ErrInvalidPrice    = apperrors.New(apperrors.CodeValidation, "Price must be greater than 0")
	ErrInvalidMRP      = apperrors.New(apperrors.CodeValidation, "MRP must be greater than 0")
	ErrInvalidDiscount = apperrors.New(apperrors.CodeValidation, "Discount cannot be negative")
	ErrInvalidStock    = apperrors.New(apperrors.CodeValidation, "Quantity cannot be negative")
	ErrInvalidGrade    = apperrors.New(apperrors.CodeValidation, "Grade must be at least 1")
	ErrInvalidBoard    = apperrors.New(apperrors.CodeValidation, "Unknown board")
	ErrInvalidQuantity = apperrors.New(apperrors.CodeValidation, "Quantity must be greater than 0")
)

// NewInsufficientStockError 构造指明图书与数量的库存不足错误
// 多明细订单失败时调用方需要知道是哪本书不够
func NewInsufficientStockError(title string, available, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.CodeConflict,
		"Insufficient stock for book: %s. Available: %d, Requested: %d",
		title, available, requested)
}
