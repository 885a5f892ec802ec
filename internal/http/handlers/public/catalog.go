package public

import (
	"strings"

	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_list_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情（按 slug）
func (h *Handler) GetCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	category, err := h.CategoryService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
		}, response.CodeInternal, "error.category_load_failed")
		return
	}
	response.Success(c, category)
}

// ListBanners 当前生效的首页 Banner
func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.BannerService.ListValid()
	if err != nil {
		respondError(c, response.CodeInternal, "error.banner_list_failed", err)
		return
	}
	response.Success(c, banners)
}
