package public

import (
	"strconv"
	"strings"

	"github.com/petmart-next/internal/http/handlers/shared"
	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 前台商品列表（仅上架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   strings.TrimSpace(c.Query("category_id")),
		PetKind:      strings.TrimSpace(c.Query("pet_kind")),
		Brand:        strings.TrimSpace(c.Query("brand")),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		OnlyInStock:  c.Query("in_stock") == "true",
		WithCategory: true,
		OrderBy:      strings.TrimSpace(c.Query("order_by")),
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_list_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// ListRelatedProducts 同分类下的相关商品推荐
func (h *Handler) ListRelatedProducts(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.product_load_failed")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	_, limit = shared.NormalizePagination(1, limit)
	related, _, err := h.ProductService.List(repository.ProductListFilter{
		Page:        1,
		PageSize:    limit,
		CategoryID:  strconv.FormatUint(uint64(product.CategoryID), 10),
		OnlyActive:  true,
		OnlyInStock: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_list_failed", err)
		return
	}

	filtered := make([]models.Product, 0, len(related))
	for _, item := range related {
		if item.ID == product.ID {
			continue
		}
		filtered = append(filtered, item)
	}
	response.Success(c, filtered)
}

// GetProduct 前台商品详情（按 slug，附带评分汇总）
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.product_load_failed")
		return
	}
	response.Success(c, product)
}
