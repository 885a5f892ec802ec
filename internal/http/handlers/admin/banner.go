package admin

import (
	"strings"

	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/repository"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBanners 后台 Banner 列表
func (h *Handler) ListBanners(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	filter := repository.BannerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	switch c.Query("is_active") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	banners, total, err := h.BannerService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.banner_list_failed", err)
		return
	}
	response.SuccessWithPage(c, banners, response.BuildPagination(page, pageSize, total))
}

// GetBanner 后台 Banner 详情
func (h *Handler) GetBanner(c *gin.Context) {
	banner, err := h.BannerService.GetByID(c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.banner_load_failed")
		return
	}
	response.Success(c, banner)
}

// CreateBanner 创建 Banner
func (h *Handler) CreateBanner(c *gin.Context) {
	var input service.BannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	banner, err := h.BannerService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.banner_create_failed")
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新 Banner
func (h *Handler) UpdateBanner(c *gin.Context) {
	var input service.BannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	banner, err := h.BannerService.Update(c.Param("id"), input)
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.banner_update_failed")
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除 Banner
func (h *Handler) DeleteBanner(c *gin.Context) {
	if err := h.BannerService.Delete(c.Param("id")); err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.banner_delete_failed")
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}
