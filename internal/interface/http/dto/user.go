package dto

import (
	"github.com/xiebiao/schoolshop/internal/domain/user"
)

// CreateUserRequest HTTP员工账号创建请求
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Priya Sharma"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Role     string `json:"role" binding:"required" example:"STAFF"`
	Phone    string `json:"phone" binding:"max=20"`
	Address  string `json:"address" binding:"max=500"`
	City     string `json:"city" binding:"max=50"`
	State    string `json:"state" binding:"max=50"`
	Zip      string `json:"zip" binding:"max=10"`
	Country  string `json:"country" binding:"max=50"`
}

// UpdateUserRequest HTTP员工账号更新请求
// 密码可选,传入时重置为新密码
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"omitempty,min=8,max=20"`
	Phone    string `json:"phone" binding:"max=20"`
	Address  string `json:"address" binding:"max=500"`
	City     string `json:"city" binding:"max=50"`
	State    string `json:"state" binding:"max=50"`
	Zip      string `json:"zip" binding:"max=10"`
	Country  string `json:"country" binding:"max=50"`
}

// ToEntity 转领域实体
func (r *UpdateUserRequest) ToEntity() *user.User {
	return &user.User{
		Name:    r.Name,
		Email:   r.Email,
		Role:    user.Role(r.Role),
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
		Country: r.Country,
	}
}

// UserResponse HTTP员工账号响应
// 永不包含密码字段
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	LastLogin string `json:"last_login"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FromUser 领域实体转响应
func FromUser(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		Zip:       u.Zip,
		Country:   u.Country,
		LastLogin: formatTimePtr(u.LastLogin),
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

// FromUsers 批量转换
func FromUsers(users []*user.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
}

// ChangePasswordRequest HTTP修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=20"`
}
