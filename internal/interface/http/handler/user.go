package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/schoolshop/internal/application/user"
	"github.com/xiebiao/schoolshop/internal/domain/user"
	"github.com/xiebiao/schoolshop/internal/interface/http/dto"
	"github.com/xiebiao/schoolshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
	"github.com/xiebiao/schoolshop/pkg/response"
)

// UserHandler 员工账号HTTP处理器
type UserHandler struct {
	svc              user.Service
	loginUseCase     *appuser.LoginUseCase
	logoutUseCase    *appuser.LogoutUseCase
	changePasswordUC *appuser.ChangePasswordUseCase
}

// NewUserHandler 创建员工账号处理器
func NewUserHandler(
	svc user.Service,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	changePasswordUC *appuser.ChangePasswordUseCase,
) *UserHandler {
	return &UserHandler{
		svc:              svc,
		loginUseCase:     loginUseCase,
		logoutUseCase:    logoutUseCase,
		changePasswordUC: changePasswordUC,
	}
}

// CreateUser 创建员工账号
// @Summary      创建员工账号
// @Tags         员工
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateUserRequest true "账号信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误/邮箱已占用/密码强度不足"
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	u := &user.User{
		Name:    req.Name,
		Email:   req.Email,
		Role:    user.Role(req.Role),
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
		Country: req.Country,
	}
	created, err := h.svc.CreateUser(c.Request.Context(), u, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromUser(created), "User created successfully")
}

// GetUser 查询员工账号
// @Summary      查询员工账号
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账号ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "账号不存在"
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.svc.GetUserByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromUser(u), "User retrieved successfully")
}

// UpdateUser 更新员工账号
// @Summary      更新员工账号
// @Description  不修改密码,密码走单独的修改密码接口
// @Tags         员工
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账号ID"
// @Param        request body dto.UpdateUserRequest true "账号信息"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误/邮箱已占用"
// @Failure      404 {object} response.Response "账号不存在"
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	updated, err := h.svc.UpdateUser(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 传入密码时一并重置
	if req.Password != "" {
		if err := h.svc.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, dto.FromUser(updated), "User updated successfully")
}

// DeleteUser 停用员工账号
// @Summary      停用员工账号
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账号ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "账号不存在"
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "User deleted successfully")
}

// ListUsers 查询全部有效账号
// @Summary      查询全部有效账号
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromUsers(users), "Users retrieved successfully")
}

// ListByRole 按角色查询账号
// @Summary      按角色查询账号
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        role path string true "角色" Enums(ADMIN, MANAGER, STAFF, INVENTORY_MANAGER, SALES_PERSON)
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Failure      400 {object} response.Response "角色无效"
// @Router       /api/users/role/{role} [get]
func (h *UserHandler) ListByRole(c *gin.Context) {
	role, ok := user.ParseRole(c.Param("role"))
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid role: %s", c.Param("role")))
		return
	}

	users, err := h.svc.ListByRole(c.Request.Context(), role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromUsers(users), "Users retrieved successfully")
}

// GetUserByEmail 按邮箱查询账号
// @Summary      按邮箱查询账号
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        email path string true "邮箱"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "账号不存在"
// @Router       /api/users/email/{email} [get]
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	u, err := h.svc.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromUser(u), "User retrieved successfully")
}

// ListAdmins 查询管理角色账号
// @Summary      查询管理角色账号
// @Description  返回ADMIN与MANAGER角色的有效账号
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Router       /api/users/admins [get]
func (h *UserHandler) ListAdmins(c *gin.Context) {
	users, err := h.svc.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromUsers(users), "Users retrieved successfully")
}

// SearchUsers 搜索账号
// @Summary      搜索账号
// @Description  关键词匹配姓名/邮箱,可叠加角色过滤
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        keyword query string false "关键词"
// @Param        role query string false "角色"
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Failure      400 {object} response.Response "角色无效"
// @Router       /api/users/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.svc.SearchUsers(c.Request.Context(), c.Query("keyword"), user.Role(c.Query("role")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromUsers(users), "Users retrieved successfully")
}

// CheckEmail 检查邮箱是否可用
// @Summary      检查邮箱是否可用
// @Tags         员工
// @Produce      json
// @Param        email query string true "邮箱"
// @Success      200 {object} response.Response{data=dto.AvailabilityResponse}
// @Router       /api/users/check-email [get]
func (h *UserHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, apperrors.New(apperrors.CodeValidation, "Email is required"))
		return
	}

	available, err := h.svc.IsEmailAvailable(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.AvailabilityResponse{Available: available}, "Email availability checked")
}

// Login 员工登录
// @Summary      员工登录
// @Description  登录失败统一返回401,不透露邮箱是否存在
// @Tags         员工
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录凭证"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		User:         dto.FromUser(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, "Login successful")
}

// Logout 员工登出
// @Summary      员工登出
// @Description  删除会话并将当前令牌加入黑名单
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	token := middleware.GetToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "Logout successful")
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Description  旧密码必须正确,修改成功后删除会话要求重新登录
// @Tags         员工
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账号ID"
// @Param        request body dto.ChangePasswordRequest true "新旧密码"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "旧密码错误/新密码强度不足"
// @Failure      404 {object} response.Response "账号不存在"
// @Router       /api/users/{id}/change-password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if err := h.changePasswordUC.Execute(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "Password changed successfully")
}
