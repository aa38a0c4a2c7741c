package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// txKey 事务DB在context中的键
type txKey struct{}

// getDB 从context提取事务DB,无事务时使用默认连接
// Repository的所有方法都通过getDB取连接,
// 从而在TxManager.Transaction内自动参与同一事务
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// likePattern 构造两端通配的LIKE模式
// MySQL默认排序规则不区分大小写,LIKE即为大小写无关的子串匹配
func likePattern(s string) string {
	return "%" + s + "%"
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
