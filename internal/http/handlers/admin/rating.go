package admin

import (
	"strconv"

	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListRatings 评分列表
func (h *Handler) ListRatings(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	minScore, _ := strconv.Atoi(c.Query("min_score"))
	filter := repository.RatingListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		UserID:    uint(userID),
		MinScore:  minScore,
	}

	ratings, total, err := h.RatingService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.rating_list_failed", err)
		return
	}
	response.SuccessWithPage(c, ratings, response.BuildPagination(page, pageSize, total))
}

// DeleteRating 删除评分
func (h *Handler) DeleteRating(c *gin.Context) {
	if err := h.RatingService.Delete(c.Param("id")); err != nil {
		respondError(c, response.CodeInternal, "error.rating_delete_failed", err)
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}
