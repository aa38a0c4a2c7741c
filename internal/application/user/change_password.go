package user

import (
	"context"

	"github.com/xiebiao/schoolshop/internal/domain/user"
)

// ChangePasswordUseCase 修改密码用例
// 修改成功后删除会话,所有已登录端强制重新登录
type ChangePasswordUseCase struct {
	userService  user.Service
	sessionStore SessionStore
}

// NewChangePasswordUseCase 创建修改密码用例
func NewChangePasswordUseCase(userService user.Service, sessionStore SessionStore) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userService: userService, sessionStore: sessionStore}
}

// Execute 执行修改密码
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if err := uc.userService.ChangePassword(ctx, userID, oldPassword, newPassword); err != nil {
		return err
	}
	// 会话删除失败不回滚密码修改
	_ = uc.sessionStore.DeleteSession(ctx, userID)
	return nil
}
