package admin

import (
	"errors"

	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var adminAuthErrorRules = []mappedHandlerError{
	{target: service.ErrAuthFailed, code: response.CodeUnauthorized, key: "error.auth_failed"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, key: "error.weak_password"},
	{target: service.ErrTooManyAttempts, code: response.CodeTooManyRequests, key: "error.too_many_attempts"},
}

var catalogWriteErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrSlugExists, code: response.CodeConflict, key: "error.slug_exists"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, key: "error.category_in_use"},
	{target: service.ErrBannerNotFound, code: response.CodeNotFound, key: "error.banner_not_found"},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
}
