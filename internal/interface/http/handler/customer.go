package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/schoolshop/internal/domain/customer"
	"github.com/xiebiao/schoolshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
	"github.com/xiebiao/schoolshop/pkg/response"
)

// CustomerHandler 客户HTTP处理器
type CustomerHandler struct {
	svc customer.Service
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(svc customer.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// CreateCustomer 创建客户
// @Summary      创建客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CustomerRequest true "客户信息"
// @Success      201 {object} response.Response{data=dto.CustomerResponse}
// @Failure      400 {object} response.Response "参数错误/邮箱或手机号已占用"
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	created, err := h.svc.CreateCustomer(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromCustomer(created), "Customer created successfully")
}

// GetCustomer 查询客户详情
// @Summary      查询客户详情
// @Description  返回值附带实时计算的订单数与累计订单金额
// @Tags         客户
// @Produce      json
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	cust, err := h.svc.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.svc.GetStats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomer(cust).WithStats(stats), "Customer retrieved successfully")
}

// GetCustomerByEmail 按邮箱查询客户
// @Summary      按邮箱查询客户
// @Tags         客户
// @Produce      json
// @Param        email path string true "邮箱"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/customers/email/{email} [get]
func (h *CustomerHandler) GetCustomerByEmail(c *gin.Context) {
	cust, err := h.svc.GetCustomerByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomer(cust), "Customer retrieved successfully")
}

// GetCustomerByPhone 按手机号查询客户
// @Summary      按手机号查询客户
// @Tags         客户
// @Produce      json
// @Param        phone path string true "手机号"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/customers/phone/{phone} [get]
func (h *CustomerHandler) GetCustomerByPhone(c *gin.Context) {
	cust, err := h.svc.GetCustomerByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomer(cust), "Customer retrieved successfully")
}

// UpdateCustomer 更新客户
// @Summary      更新客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Param        request body dto.CustomerRequest true "客户信息"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      400 {object} response.Response "参数错误/邮箱或手机号已占用"
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	updated, err := h.svc.UpdateCustomer(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomer(updated), "Customer updated successfully")
}

// DeleteCustomer 停用客户
// @Summary      停用客户
// @Description  软删除,历史订单保留
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "Customer deleted successfully")
}

// ListCustomers 查询全部有效客户
// @Summary      查询全部有效客户
// @Tags         客户
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CustomerResponse}
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomers(customers), "Customers retrieved successfully")
}

// ListByType 按类型查询客户
// @Summary      按类型查询客户
// @Tags         客户
// @Produce      json
// @Param        type path string true "客户类型" Enums(INDIVIDUAL, SCHOOL, INSTITUTION, BULK_BUYER)
// @Success      200 {object} response.Response{data=[]dto.CustomerResponse}
// @Failure      400 {object} response.Response "类型无效"
// @Router       /api/customers/type/{type} [get]
func (h *CustomerHandler) ListByType(c *gin.Context) {
	t, ok := customer.ParseType(c.Param("type"))
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid customer type: %s", c.Param("type")))
		return
	}

	customers, err := h.svc.ListByType(c.Request.Context(), t)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomers(customers), "Customers retrieved successfully")
}

// ListByCity 按城市查询客户
// @Summary      按城市查询客户
// @Tags         客户
// @Produce      json
// @Param        city path string true "城市"
// @Success      200 {object} response.Response{data=[]dto.CustomerResponse}
// @Router       /api/customers/city/{city} [get]
func (h *CustomerHandler) ListByCity(c *gin.Context) {
	customers, err := h.svc.ListByCity(c.Request.Context(), c.Param("city"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomers(customers), "Customers retrieved successfully")
}

// SearchCustomers 搜索客户
// @Summary      搜索客户
// @Description  关键词匹配姓名/邮箱/手机号/机构名称
// @Tags         客户
// @Produce      json
// @Param        keyword query string true "关键词"
// @Success      200 {object} response.Response{data=[]dto.CustomerResponse}
// @Router       /api/customers/search [get]
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	customers, err := h.svc.SearchCustomers(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomers(customers), "Customers retrieved successfully")
}

// ListWithOrders 查询有订单的客户
// @Summary      查询有订单的客户
// @Tags         客户
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CustomerResponse}
// @Router       /api/customers/with-orders [get]
func (h *CustomerHandler) ListWithOrders(c *gin.Context) {
	customers, err := h.svc.ListWithOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomers(customers), "Customers retrieved successfully")
}

// TopCustomers 查询消费金额最高的客户
// @Summary      查询消费金额最高的客户
// @Tags         客户
// @Produce      json
// @Param        limit query int false "返回数量(默认10)"
// @Success      200 {object} response.Response{data=[]dto.CustomerResponse}
// @Router       /api/customers/top-customers [get]
func (h *CustomerHandler) TopCustomers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid limit: %s", raw))
			return
		}
		limit = v
	}

	customers, err := h.svc.TopCustomers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromCustomers(customers), "Customers retrieved successfully")
}

// CheckEmail 检查邮箱是否可用
// @Summary      检查邮箱是否可用
// @Tags         客户
// @Produce      json
// @Param        email query string true "邮箱"
// @Success      200 {object} response.Response{data=dto.AvailabilityResponse}
// @Router       /api/customers/check-email [get]
func (h *CustomerHandler) CheckEmail(c *gin.Context) {
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

// CheckPhone 检查手机号是否可用
// @Summary      检查手机号是否可用
// @Tags         客户
// @Produce      json
// @Param        phone query string true "手机号"
// @Success      200 {object} response.Response{data=dto.AvailabilityResponse}
// @Router       /api/customers/check-phone [get]
func (h *CustomerHandler) CheckPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.Error(c, apperrors.New(apperrors.CodeValidation, "Phone is required"))
		return
	}

	available, err := h.svc.IsPhoneAvailable(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.AvailabilityResponse{Available: available}, "Phone availability checked")
}
