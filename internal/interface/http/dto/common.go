package dto

import (
	"fmt"
	"time"
)

// timeLayout 响应中的时间格式
const timeLayout = "2006-01-02 15:04:05"

// DateLayout 查询参数中的日期格式(ISO日期)
const DateLayout = "2006-01-02"

// FormatPriceRupees 格式化金额(派萨→卢比)
// 例如:45000派萨 → "450.00"
func FormatPriceRupees(paise int64) string {
	return fmt.Sprintf("%.2f", float64(paise)/100.0)
}

// formatTime 格式化时间,零值返回空串
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// formatTimePtr 格式化可空时间
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}
