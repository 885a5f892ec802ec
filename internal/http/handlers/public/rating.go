package public

import (
	"strconv"

	"github.com/petmart-next/internal/http/handlers/shared"
	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

type rateProductRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Score     int    `json:"score" binding:"required"`
	Comment   string `json:"comment"`
}

// ListProductRatings 商品评分列表
func (h *Handler) ListProductRatings(c *gin.Context) {
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	ratings, total, err := h.RatingService.ListByProduct(productID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.rating_list_failed", err)
		return
	}
	response.SuccessWithPage(c, ratings, response.BuildPagination(page, pageSize, total))
}

// GetProductRatingSummary 商品评分汇总
func (h *Handler) GetProductRatingSummary(c *gin.Context) {
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	summary, err := h.RatingService.Summary(productID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.rating_summary_failed", err)
		return
	}
	response.Success(c, summary)
}

// RateProduct 提交商品评分（需购买过该商品）
func (h *Handler) RateProduct(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req rateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	rating, err := h.RatingService.Rate(service.RateInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Score:     req.Score,
		Comment:   req.Comment,
	})
	if err != nil {
		respondWithMappedError(c, err, ratingErrorRules, response.CodeInternal, "error.rating_submit_failed")
		return
	}
	response.Success(c, rating)
}
