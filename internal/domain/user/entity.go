package user

import (
	"time"
)

// Role 员工角色
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleManager          Role = "MANAGER"
	RoleStaff            Role = "STAFF"
	RoleInventoryManager Role = "INVENTORY_MANAGER"
	RoleSalesPerson      Role = "SALES_PERSON"
)

// ParseRole 解析角色,未知值返回false
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff, RoleInventoryManager, RoleSalesPerson:
		return Role(s), true
	}
	return "", false
}

// User 员工账号实体
// 设计说明:
// 1. Password只存bcrypt哈希值,任何查询投影都不返回该字段
// 2. 邮箱在有效账号中唯一
// 3. LastLogin在每次登录成功后更新
type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string // bcrypt哈希值
	Role      Role
	Phone     string
	Address   string
	City      string
	State     string
	Zip       string
	Country   string
	Active    bool
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate 校验业务不变式(不含密码,密码由Service层校验强度后加密)
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return ErrInvalidRole
	}
	return nil
}

// ApplyUpdate 用输入实体覆盖可修改字段(不含密码)
func (u *User) ApplyUpdate(in *User) {
	u.Name = in.Name
	u.Email = in.Email
	u.Role = in.Role
	u.Phone = in.Phone
	u.Address = in.Address
	u.City = in.City
	u.State = in.State
	u.Zip = in.Zip
	u.Country = in.Country
	u.UpdatedAt = time.Now()
}

// TouchLogin 记录登录时间
func (u *User) TouchLogin() {
	now := time.Now()
	u.LastLogin = &now
	u.UpdatedAt = now
}

// Deactivate 软删除
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}
