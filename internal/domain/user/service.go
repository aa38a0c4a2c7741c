package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// bcryptCost 推荐值,cost每+1耗时翻倍
const bcryptCost = 12

// Service 员工账号领域服务
// 设计说明:
// 1. 密码加密、验证等跨实体逻辑集中在Service
// 2. 登录失败统一返回ErrInvalidCredentials,不暴露邮箱是否存在
type Service interface {
	// CreateUser 创建账号
	// 业务规则:邮箱唯一,密码强度8-20位且含字母和数字,bcrypt加密存储
	CreateUser(ctx context.Context, u *User, plainPassword string) (*User, error)

	// GetUserByID 根据ID获取账号
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// GetUserByEmail 根据邮箱获取账号
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser 更新账号(不含密码)
	UpdateUser(ctx context.Context, id uint, u *User) (*User, error)

	// DeleteUser 停用账号
	DeleteUser(ctx context.Context, id uint) error

	// ListUsers 查询全部有效账号
	ListUsers(ctx context.Context) ([]*User, error)

	// ListByRole 按角色查询
	ListByRole(ctx context.Context, role Role) ([]*User, error)

	// ListAdmins 查询管理角色账号(ADMIN与MANAGER)
	ListAdmins(ctx context.Context) ([]*User, error)

	// SearchUsers 按关键词搜索账号,角色为空时不过滤角色
	SearchUsers(ctx context.Context, keyword string, role Role) ([]*User, error)

	// IsEmailAvailable 邮箱是否可用
	IsEmailAvailable(ctx context.Context, email string) (bool, error)

	// Authenticate 登录认证
	// 成功时更新LastLogin并返回账号,失败统一返回ErrInvalidCredentials
	Authenticate(ctx context.Context, email, plainPassword string) (*User, error)

	// ChangePassword 修改密码
	// 业务规则:旧密码必须匹配,新密码需通过强度校验
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error

	// ResetPassword 管理动作:不校验旧密码直接设置新密码
	// 新密码仍需通过强度校验
	ResetPassword(ctx context.Context, id uint, newPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建员工账号领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateUser 创建账号
func (s *service) CreateUser(ctx context.Context, u *User, plainPassword string) (*User, error) {
	// 1. 字段校验
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if !isValidEmail(u.Email) {
		return nil, ErrInvalidEmail
	}

	// 2. 密码强度校验
	if err := validatePasswordStrength(plainPassword); err != nil {
		return nil, err
	}

	// 3. 邮箱查重
	existing, err := s.repo.FindByEmail(ctx, u.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailDuplicate
	}
	if err != nil && err != ErrUserNotFound {
		return nil, err
	}

	// 4. 密码加密
	// bcrypt自动加盐,相同密码每次加密结果不同
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to hash password")
	}
	u.Password = string(hashed)

	// 5. 持久化
	u.Active = true
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID 根据ID获取账号
func (s *service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetUserByEmail 根据邮箱获取账号
func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// UpdateUser 更新账号(不含密码)
func (s *service) UpdateUser(ctx context.Context, id uint, u *User) (*User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if !isValidEmail(u.Email) {
		return nil, ErrInvalidEmail
	}

	if u.Email != existing.Email {
		other, err := s.repo.FindByEmail(ctx, u.Email)
		if err == nil && other != nil && other.ID != id {
			return nil, ErrEmailDuplicate
		}
		if err != nil && err != ErrUserNotFound {
			return nil, err
		}
	}

	existing.ApplyUpdate(u)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteUser 停用账号
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListUsers 查询全部有效账号
func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// ListByRole 按角色查询
func (s *service) ListByRole(ctx context.Context, role Role) ([]*User, error) {
	if _, ok := ParseRole(string(role)); !ok {
		return nil, ErrInvalidRole
	}
	return s.repo.ListByRole(ctx, role)
}

// ListAdmins 查询管理角色账号
func (s *service) ListAdmins(ctx context.Context) ([]*User, error) {
	return s.repo.ListByRoles(ctx, []Role{RoleAdmin, RoleManager})
}

// SearchUsers 按关键词搜索账号
func (s *service) SearchUsers(ctx context.Context, keyword string, role Role) ([]*User, error) {
	if role != "" {
		if _, ok := ParseRole(string(role)); !ok {
			return nil, ErrInvalidRole
		}
	}
	return s.repo.Search(ctx, keyword, role)
}

// IsEmailAvailable 邮箱是否可用
func (s *service) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == ErrUserNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Authenticate 登录认证
func (s *service) Authenticate(ctx context.Context, email, plainPassword string) (*User, error) {
	// 查不到账号与密码错误返回同一个错误,避免探测有效邮箱
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainPassword)) != nil {
		return nil, ErrInvalidCredentials
	}

	u.TouchLogin()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 修改密码
func (s *service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrOldPasswordMismatch
	}

	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.Wrap(err, "Failed to hash password")
	}
	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

// ResetPassword 不校验旧密码直接设置新密码
func (s *service) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.Wrap(err, "Failed to hash password")
	}
	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

// isValidEmail 邮箱格式校验
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则:8-20位,必须同时包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
