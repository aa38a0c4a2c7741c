package order

import (
	"fmt"
	"time"
)

// GenerateOrderNumber 生成订单号
// 格式:ORD + 秒级时间戳(yyyyMMddHHmmss)
// 示例:ORD20260901143015
//
// 同一秒内的并发下单会产生相同的基础订单号,
// 由调用方在插入冲突时改用GenerateOrderNumberWithSuffix重试
func GenerateOrderNumber(now time.Time) string {
	return "ORD" + now.Format("20060102150405")
}

// GenerateOrderNumberWithSuffix 生成带毫秒消歧后缀的订单号
// 在基础订单号后追加当前毫秒值(0-999),用于冲突重试
func GenerateOrderNumberWithSuffix(now time.Time) string {
	return fmt.Sprintf("%s%d", GenerateOrderNumber(now), now.Nanosecond()/1e6%1000)
}
