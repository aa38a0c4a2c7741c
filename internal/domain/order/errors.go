package order

import (
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.New(apperrors.CodeNotFound, "Order not found")

	// ErrOrderNotCancellable 已送达、已取消或已退货的订单不可再取消
	ErrOrderNotCancellable = apperrors.New(apperrors.CodeConflict, "Order can no longer be cancelled")

	// ErrOrderNumberConflict 订单号生成重试次数耗尽
	ErrOrderNumberConflict = apperrors.New(apperrors.CodeConflict, "Failed to generate a unique order number")

	ErrEmptyItems           = apperrors.New(apperrors.CodeValidation, "Order must contain at least one item")
	ErrInvalidQuantity      = apperrors.New(apperrors.CodeValidation, "Item quantity must be greater than 0")
	ErrInvalidStatus        = apperrors.New(apperrors.CodeValidation, "Unknown order status")
	ErrInvalidPaymentStatus = apperrors.New(apperrors.CodeValidation, "Unknown payment status")
	ErrInvalidPaymentMethod = apperrors.New(apperrors.CodeValidation, "Unknown payment method")
	ErrInvalidDateRange     = apperrors.New(apperrors.CodeValidation, "Start date must not be after end date")
)
