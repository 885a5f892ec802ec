package admin

import (
	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories 后台分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_list_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 后台分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetByID(c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.category_load_failed")
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	category, err := h.CategoryService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.category_create_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	category, err := h.CategoryService.Update(c.Param("id"), input)
	if err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.category_update_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（分类下仍有商品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.CategoryService.Delete(c.Param("id")); err != nil {
		respondWithMappedError(c, err, catalogWriteErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}
