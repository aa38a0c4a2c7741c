package user

import (
	"context"
)

// Repository 员工账号仓储接口
type Repository interface {
	// Create 创建账号
	Create(ctx context.Context, u *User) error

	// FindByID 根据ID查找有效账号
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找有效账号
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新账号
	Update(ctx context.Context, u *User) error

	// Delete 停用账号(软删除)
	Delete(ctx context.Context, id uint) error

	// List 查询全部有效账号
	List(ctx context.Context) ([]*User, error)

	// ListByRole 按角色查询
	ListByRole(ctx context.Context, role Role) ([]*User, error)

	// ListByRoles 按角色集合查询
	ListByRoles(ctx context.Context, roles []Role) ([]*User, error)

	// Search 按关键词搜索(匹配姓名、邮箱),角色可选
	Search(ctx context.Context, keyword string, role Role) ([]*User, error)
}
