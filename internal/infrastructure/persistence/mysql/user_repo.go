package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/schoolshop/internal/domain/user"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// userRepository 员工账号仓储的MySQL实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建员工账号仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		Zip:       u.Zip,
		Country:   u.Country,
		IsActive:  u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Role:      user.Role(m.Role),
		Phone:     m.Phone,
		Address:   m.Address,
		City:      m.City,
		State:     m.State,
		Zip:       m.Zip,
		Country:   m.Country,
		Active:    m.IsActive,
		LastLogin: m.LastLogin,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toUserEntities(models []UserModel) []*user.User {
	out := make([]*user.User, 0, len(models))
	for i := range models {
		out = append(out, toUserEntity(&models[i]))
	}
	return out
}

// Create 创建账号
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "Failed to create user")
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找有效账号
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find user")
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找有效账号
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("email = ? AND is_active = ?", email, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find user by email")
	}
	return toUserEntity(&model), nil
}

// Update 更新账号
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	err := getDB(ctx, r.db).Model(&UserModel{}).Where("id = ?", u.ID).
		Select("*").Omit("id", "created_at").Updates(model).Error
	if err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "Failed to update user")
	}
	return nil
}

// Delete 停用账号(软删除)
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete user")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// List 查询全部有效账号
func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	err := getDB(ctx, r.db).Where("is_active = ?", true).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list users")
	}
	return toUserEntities(models), nil
}

// ListByRole 按角色查询
func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	var models []UserModel
	err := getDB(ctx, r.db).Where("role = ? AND is_active = ?", string(role), true).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list users by role")
	}
	return toUserEntities(models), nil
}

// ListByRoles 按角色集合查询
func (r *userRepository) ListByRoles(ctx context.Context, roles []user.Role) ([]*user.User, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	var models []UserModel
	err := getDB(ctx, r.db).Where("role IN ? AND is_active = ?", names, true).
		Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list users by roles")
	}
	return toUserEntities(models), nil
}

// Search 按关键词搜索(匹配姓名、邮箱),角色为空时不过滤角色
func (r *userRepository) Search(ctx context.Context, keyword string, role user.Role) ([]*user.User, error) {
	like := "%" + keyword + "%"
	query := getDB(ctx, r.db).Where("is_active = ?", true).
		Where("name LIKE ? OR email LIKE ?", like, like)
	if role != "" {
		query = query.Where("role = ?", string(role))
	}
	var models []UserModel
	err := query.Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to search users")
	}
	return toUserEntities(models), nil
}
