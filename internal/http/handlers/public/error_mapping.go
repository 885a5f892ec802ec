package public

import (
	"errors"

	"github.com/petmart-next/internal/cart"
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

var cartErrorRules = []mappedHandlerError{
	{target: cart.ErrOutOfStock, code: response.CodeBadRequest, key: "error.out_of_stock"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: cart.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: cart.ErrOutOfStock, code: response.CodeBadRequest, key: "error.out_of_stock"},
	{target: service.ErrStockChanged, code: response.CodeConflict, key: "error.stock_changed"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrCheckoutFormInvalid, code: response.CodeBadRequest, key: "error.checkout_form_invalid"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrAuthFailed, code: response.CodeUnauthorized, key: "error.auth_failed"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, key: "error.user_disabled"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, key: "error.weak_password"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrTooManyAttempts, code: response.CodeTooManyRequests, key: "error.too_many_attempts"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
}

var ratingErrorRules = []mappedHandlerError{
	{target: service.ErrRatingScoreInvalid, code: response.CodeBadRequest, key: "error.rating_score_invalid"},
	{target: service.ErrRatingNotPermitted, code: response.CodeForbidden, key: "error.rating_not_permitted"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
}
