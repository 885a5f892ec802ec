package public

import (
	"strconv"
	"strings"

	"github.com/petmart-next/internal/cart"
	"github.com/petmart-next/internal/http/handlers/shared"
	"github.com/petmart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	City            string `json:"city"`
	Region          string `json:"region"`
	Country         string `json:"country"`
	ContactPhone    string `json:"contact_phone" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
	Note            string `json:"note"`
}

// Checkout 从购物车创建订单（需登录）
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	order, err := h.OrderService.Checkout(c.Request.Context(), userID, cart.CheckoutForm{
		DeliveryAddress: req.DeliveryAddress,
		City:            req.City,
		Region:          req.Region,
		Country:         req.Country,
		ContactPhone:    req.ContactPhone,
		PaymentMethod:   req.PaymentMethod,
		Note:            req.Note,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.checkout_failed")
		return
	}
	response.Success(c, order)
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	status := strings.TrimSpace(c.Query("status"))

	orders, total, err := h.OrderService.ListByUser(userID, page, pageSize, status)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_list_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForUser(c.Param("order_no"), userID)
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.order_load_failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消当前用户订单并回补库存
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.CancelByUser(c.Param("order_no"), userID)
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.order_cancel_failed")
		return
	}
	response.Success(c, order)
}
