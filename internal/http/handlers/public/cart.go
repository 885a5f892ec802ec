package public

import (
	"strconv"

	"github.com/petmart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// NewCartSession 签发匿名购物车会话标识
func (h *Handler) NewCartSession(c *gin.Context) {
	response.Success(c, gin.H{
		"session_key": h.CartService.NewSessionKey(),
	})
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	owner, ok := h.cartOwner(c)
	if !ok {
		return
	}
	view, err := h.CartService.Get(c.Request.Context(), owner)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_load_failed")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	owner, ok := h.cartOwner(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	view, err := h.CartService.AddItem(c.Request.Context(), owner, req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// SetCartQuantity 设置购物车行项目数量
func (h *Handler) SetCartQuantity(c *gin.Context) {
	owner, ok := h.cartOwner(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req setCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	view, err := h.CartService.SetQuantity(c.Request.Context(), owner, productID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除购物车行项目
func (h *Handler) RemoveCartItem(c *gin.Context) {
	owner, ok := h.cartOwner(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), owner, productID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	owner, ok := h.cartOwner(c)
	if !ok {
		return
	}
	view, err := h.CartService.Clear(c.Request.Context(), owner)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return uint(value), true
}
