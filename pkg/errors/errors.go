package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// 业务错误码
// 设计说明：
// 1. 错误码使用字符串（客户端按类型判断，不依赖HTTP状态码）
// 2. 五类错误覆盖全部业务场景，与HTTP状态码一一对应
const (
	CodeValidation   = "VALIDATION_ERROR" // 参数缺失/格式错误 → 400
	CodeNotFound     = "NOT_FOUND"        // 标识符找不到有效记录 → 404
	CodeConflict     = "CONFLICT"         // 唯一性冲突/库存不足/状态不允许 → 400
	CodeUnauthorized = "UNAUTHORIZED"     // 登录凭证错误 → 401
	CodeInternal     = "INTERNAL_ERROR"   // 未预期的失败 → 500
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Fields仅在参数校验失败时携带 字段名→错误说明 的映射
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 错误码 → HTTP状态码
// 注意：CONFLICT按业务规则失败处理，返回400而非409
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新的AppError
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf 格式化创建AppError
func Newf(code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewValidation 创建带字段明细的参数错误
func NewValidation(message string, fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: fields}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal     = New(CodeInternal, "An unexpected error occurred")
	ErrInvalidLogin = New(CodeUnauthorized, "Invalid email or password")
)

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "An unexpected error occurred")
}

// IsCode 判断错误是否为指定错误码的AppError
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
