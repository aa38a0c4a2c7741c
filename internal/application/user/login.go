package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/schoolshop/internal/domain/user"
	"github.com/xiebiao/schoolshop/pkg/jwt"
	"github.com/xiebiao/schoolshop/pkg/logger"
)

// SessionStore 登录会话存取接口
// 生产实现为redis.SessionStore
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 员工登录用例
// 设计说明:
// 1. 领域服务校验邮箱密码并更新最近登录时间
// 2. 签发JWT Token对
// 3. 会话写入Redis,供中间件校验与强制下线
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
	sessionTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// LoginResult 登录结果
type LoginResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	// 1. 认证,失败统一返回Unauthorized
	u, err := uc.userService.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// 2. 签发Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 3. 保存会话,失败不阻断登录
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.sessionTTL); err != nil {
		logger.L().Warn("failed to save login session",
			zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResult{
		User:         u,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 员工登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	tokenTTL     time.Duration
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, tokenTTL time.Duration) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, tokenTTL: tokenTTL}
}

// Execute 删除会话并将Access Token加入黑名单
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.tokenTTL)
}
