package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
	"github.com/xiebiao/schoolshop/pkg/logger"
)

// Response 统一响应结构
// 设计说明：
// 1. Success标识业务是否成功，客户端先看它再看ErrorCode
// 2. ErrorCode是业务错误码（非HTTP状态码）
// 3. Errors仅在参数校验失败时携带 字段名→错误说明 映射
// 4. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      interface{}       `json:"data,omitempty"`
	ErrorCode string            `json:"error_code,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	result, err := svc.CreateBook(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误的细节只进日志，不进响应
	if appErr.Err != nil {
		logger.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("error_code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}

	message := appErr.Message
	if appErr.Code == apperrors.CodeInternal {
		message = "An unexpected error occurred"
	}

	c.JSON(appErr.HTTPStatus(), Response{
		Success:   false,
		Message:   message,
		ErrorCode: appErr.Code,
		Errors:    appErr.Fields,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData 创建分页数据
// page从0开始（与搜索接口的page参数一致）
func NewPageData(list interface{}, total int64, page, size int) *PageData {
	totalPages := 0
	if size > 0 {
		totalPages = int(total) / size
		if int(total)%size != 0 {
			totalPages++
		}
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, size int, message string) {
	Success(c, NewPageData(list, total, page, size), message)
}
