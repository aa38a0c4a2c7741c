package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/schoolshop/internal/application/order"
	"github.com/xiebiao/schoolshop/internal/domain/order"
	"github.com/xiebiao/schoolshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
	"github.com/xiebiao/schoolshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createUseCase *apporder.CreateOrderUseCase
	cancelUseCase *apporder.CancelOrderUseCase
	statusUseCase *apporder.UpdateStatusUseCase
	queryUseCase  *apporder.QueryOrdersUseCase
	salesUseCase  *apporder.SalesAnalyticsUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	cancelUseCase *apporder.CancelOrderUseCase,
	statusUseCase *apporder.UpdateStatusUseCase,
	queryUseCase *apporder.QueryOrdersUseCase,
	salesUseCase *apporder.SalesAnalyticsUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase: createUseCase,
		cancelUseCase: cancelUseCase,
		statusUseCase: statusUseCase,
		queryUseCase:  queryUseCase,
		salesUseCase:  salesUseCase,
	}
}

// CreateOrder 下单
// @Summary      下单
// @Description  校验客户与库存,锁定图书行,按下单时价格生成快照并扣减库存,整体在一个事务内完成
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "下单信息"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "参数错误/库存不足"
// @Failure      404 {object} response.Response "客户或图书不存在"
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	created, err := h.createUseCase.Execute(c.Request.Context(), req.ToUseCaseRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromOrder(created), "Order created successfully")
}

// GetOrder 查询订单详情
// @Summary      查询订单详情
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.queryUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrder(o), "Order retrieved successfully")
}

// GetOrderByNumber 按订单号查询订单
// @Summary      按订单号查询订单
// @Tags         订单
// @Produce      json
// @Param        orderNumber path string true "订单号"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/orders/number/{orderNumber} [get]
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	o, err := h.queryUseCase.GetByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrder(o), "Order retrieved successfully")
}

// ListOrders 查询全部订单
// @Summary      查询全部订单
// @Tags         订单
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.OrderResponse}
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.queryUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrders(orders), "Orders retrieved successfully")
}

// ListByCustomer 查询客户的订单
// @Summary      查询客户的订单
// @Tags         订单
// @Produce      json
// @Param        customerId path int true "客户ID"
// @Success      200 {object} response.Response{data=[]dto.OrderResponse}
// @Router       /api/orders/customer/{customerId} [get]
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := parseIDParam(c, "customerId")
	if err != nil {
		response.Error(c, err)
		return
	}

	orders, err := h.queryUseCase.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrders(orders), "Orders retrieved successfully")
}

// ListByStatus 按状态查询订单
// @Summary      按状态查询订单
// @Tags         订单
// @Produce      json
// @Param        status path string true "订单状态" Enums(PENDING, CONFIRMED, PROCESSING, SHIPPED, DELIVERED, CANCELLED, RETURNED)
// @Success      200 {object} response.Response{data=[]dto.OrderResponse}
// @Failure      400 {object} response.Response "状态无效"
// @Router       /api/orders/status/{status} [get]
func (h *OrderHandler) ListByStatus(c *gin.Context) {
	status, ok := order.ParseStatus(c.Param("status"))
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid order status: %s", c.Param("status")))
		return
	}

	orders, err := h.queryUseCase.ListByStatus(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrders(orders), "Orders retrieved successfully")
}

// ListRecent 查询最近订单
// @Summary      查询最近订单
// @Tags         订单
// @Produce      json
// @Param        limit query int false "返回数量(默认10)"
// @Success      200 {object} response.Response{data=[]dto.OrderResponse}
// @Router       /api/orders/recent [get]
func (h *OrderHandler) ListRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid limit: %s", raw))
			return
		}
		limit = v
	}

	orders, err := h.queryUseCase.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrders(orders), "Orders retrieved successfully")
}

// SearchOrders 搜索订单
// @Summary      搜索订单
// @Description  按订单号/客户/状态/下单日期区间组合过滤,分页返回
// @Tags         订单
// @Produce      json
// @Param        orderNumber query string false "订单号(模糊)"
// @Param        customerId query int false "客户ID"
// @Param        status query string false "订单状态"
// @Param        startDate query string false "起始日期(2006-01-02)"
// @Param        endDate query string false "结束日期(2006-01-02)"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量(默认10,最大100)"
// @Param        sortBy query string false "排序字段"
// @Param        sortDirection query string false "排序方向" Enums(asc, desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/orders/search [get]
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	var req dto.SearchOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	params := order.SearchParams{
		OrderNumber: req.OrderNumber,
		CustomerID:  req.CustomerID,
		Page:        req.Page,
		Size:        req.Size,
		SortBy:      req.SortBy,
		SortDir:     req.SortDirection,
	}

	if req.Status != "" {
		status, ok := order.ParseStatus(req.Status)
		if !ok {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid order status: %s", req.Status))
			return
		}
		params.Status = status
	}

	if req.StartDate != "" {
		start, err := time.Parse(dto.DateLayout, req.StartDate)
		if err != nil {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid startDate: %s", req.StartDate))
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dto.DateLayout, req.EndDate)
		if err != nil {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid endDate: %s", req.EndDate))
			return
		}
		params.EndDate = &end
	}

	orders, total, err := h.queryUseCase.Search(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, size := params.Page, params.Size
	if size <= 0 {
		size = 10
	}
	response.SuccessWithPage(c, dto.FromOrders(orders), total, page, size, "Orders retrieved successfully")
}

// UpdateStatus 更新订单状态
// @Summary      更新订单状态
// @Description  状态改为DELIVERED时自动记录送达时间
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "状态无效"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	// 兼容 ?status=S 查询参数与JSON请求体两种传参
	var req dto.UpdateOrderStatusRequest
	if q := c.Query("status"); q != "" {
		req.Status = q
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	status, ok := order.ParseStatus(req.Status)
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid order status: %s", req.Status))
		return
	}

	o, err := h.statusUseCase.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrder(o), "Order status updated successfully")
}

// UpdatePaymentStatus 更新支付状态
// @Summary      更新支付状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdatePaymentStatusRequest true "目标支付状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "支付状态无效"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/orders/{id}/payment-status [put]
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if q := c.Query("paymentStatus"); q != "" {
		req.PaymentStatus = q
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	status, ok := order.ParsePaymentStatus(req.PaymentStatus)
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid payment status: %s", req.PaymentStatus))
		return
	}

	o, err := h.statusUseCase.SetPaymentStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrder(o), "Payment status updated successfully")
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  恢复各明细占用的库存,已送达/已取消/已退货的订单不可取消
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "订单状态不允许取消"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.cancelUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromOrder(o), "Order cancelled successfully")
}

// TotalSales 查询累计销售额
// @Summary      查询累计销售额
// @Description  仅统计已确认和已送达的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.SalesResponse}
// @Router       /api/orders/analytics/total-sales [get]
func (h *OrderHandler) TotalSales(c *gin.Context) {
	total, err := h.salesUseCase.TotalSales(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SalesResponse{
		TotalSales:       total,
		TotalSalesRupees: dto.FormatPriceRupees(total),
	}, "Total sales retrieved successfully")
}

// SalesByDateRange 查询日期区间销售额
// @Summary      查询日期区间销售额
// @Description  日期区间两端均含当天,仅统计已确认和已送达的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        startDate query string true "起始日期(2006-01-02)"
// @Param        endDate query string true "结束日期(2006-01-02)"
// @Success      200 {object} response.Response{data=dto.SalesResponse}
// @Failure      400 {object} response.Response "日期无效或区间颠倒"
// @Router       /api/orders/analytics/sales-by-date-range [get]
func (h *OrderHandler) SalesByDateRange(c *gin.Context) {
	start, err := time.Parse(dto.DateLayout, c.Query("startDate"))
	if err != nil {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid startDate: %s", c.Query("startDate")))
		return
	}
	end, err := time.Parse(dto.DateLayout, c.Query("endDate"))
	if err != nil {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid endDate: %s", c.Query("endDate")))
		return
	}

	total, err := h.salesUseCase.SalesByDateRange(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SalesResponse{
		TotalSales:       total,
		TotalSalesRupees: dto.FormatPriceRupees(total),
	}, "Sales retrieved successfully")
}
