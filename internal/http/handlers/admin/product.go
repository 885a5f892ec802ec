package admin

import (
	"strings"

	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/repository"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 后台商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   strings.TrimSpace(c.Query("category_id")),
		PetKind:      strings.TrimSpace(c.Query("pet_kind")),
		Brand:        strings.TrimSpace(c.Query("brand")),
		Search:       strings.TrimSpace(c.Query("search")),
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

// GetProduct 后台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.product_load_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.product_create_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	product, err := h.ProductService.Update(c.Param("id"), input)
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Param("id")); err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.product_delete_failed")
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}
