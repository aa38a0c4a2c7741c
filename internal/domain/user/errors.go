package user

import (
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// 员工账号领域错误定义
var (
	ErrUserNotFound   = apperrors.New(apperrors.CodeNotFound, "User not found")
	ErrEmailDuplicate = apperrors.New(apperrors.CodeConflict, "User with this email already exists")

	ErrNameRequired  = apperrors.New(apperrors.CodeValidation, "Name is required")
	ErrEmailRequired = apperrors.New(apperrors.CodeValidation, "Email is required")
	ErrInvalidEmail  = apperrors.New(apperrors.CodeValidation, "Invalid email format")
	ErrInvalidRole   = apperrors.New(apperrors.CodeValidation, "Unknown role")
	ErrWeakPassword  = apperrors.New(apperrors.CodeValidation, "Password must be 8 to 20 characters with letters and digits")

	// ErrInvalidCredentials 登录失败统一返回,不区分邮箱不存在与密码错误
	ErrInvalidCredentials = apperrors.New(apperrors.CodeUnauthorized, "Invalid email or password")

	// ErrOldPasswordMismatch 修改密码时旧密码不匹配
	ErrOldPasswordMismatch = apperrors.New(apperrors.CodeUnauthorized, "Old password is incorrect")
)
