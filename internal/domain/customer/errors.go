package customer

import (
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// 客户领域错误定义
var (
	ErrCustomerNotFound = apperrors.New(apperrors.CodeNotFound, "Customer not found")
	ErrEmailDuplicate   = apperrors.New(apperrors.CodeConflict, "Customer with this email already exists")
	ErrPhoneDuplicate   = apperrors.New(apperrors.CodeConflict, "Customer with this phone already exists")

	ErrNameRequired  = apperrors.New(apperrors.CodeValidation, "Name is required")
	ErrEmailRequired = apperrors.New(apperrors.CodeValidation, "Email is required")
	ErrPhoneRequired = apperrors.New(apperrors.CodeValidation, "Phone is required")
	ErrInvalidEmail  = apperrors.New(apperrors.CodeValidation, "Invalid email format")
	ErrInvalidPhone  = apperrors.New(apperrors.CodeValidation, "Phone must be 10 to 15 digits with optional + prefix")
	ErrInvalidType   = apperrors.New(apperrors.CodeValidation, "Unknown customer type")
)
