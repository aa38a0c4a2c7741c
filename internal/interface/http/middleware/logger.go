package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/schoolshop/pkg/logger"
)

const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 设计说明：
// 1. 每个请求生成唯一请求ID并回写到X-Request-ID响应头
// 2. 结构化记录方法、路径、状态码、耗时、客户端IP
// 3. 不记录请求体与Token等敏感内容
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.L().Error("request completed", fields...)
		case latency > slowRequestThreshold:
			logger.L().Warn("slow request", fields...)
		default:
			logger.L().Info("request completed", fields...)
		}
	}
}

// Recovery panic恢复中间件
// panic堆栈进日志,客户端只收到统一的500响应
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.L().Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(500, gin.H{
			"success":    false,
			"message":    "An unexpected error occurred",
			"error_code": "INTERNAL_ERROR",
		})
	})
}
