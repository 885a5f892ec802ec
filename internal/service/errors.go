package service

import "errors"

// 服务层统一错误，Error() 返回消息键，由 HTTP 层映射为响应文案。
var (
	ErrAuthFailed          = errors.New("error.auth_failed")
	ErrUserDisabled        = errors.New("error.user_disabled")
	ErrEmailExists         = errors.New("error.email_exists")
	ErrWeakPassword        = errors.New("error.weak_password")
	ErrInvalidEmail        = errors.New("error.invalid_email")
	ErrTooManyAttempts     = errors.New("error.too_many_attempts")
	ErrCaptchaRequired     = errors.New("error.captcha_required")
	ErrCaptchaInvalid      = errors.New("error.captcha_invalid")
	ErrInvalidParams       = errors.New("error.invalid_params")
	ErrSlugExists          = errors.New("error.slug_exists")
	ErrProductNotFound     = errors.New("error.product_not_found")
	ErrProductNotAvailable = errors.New("error.product_not_available")
	ErrCategoryNotFound    = errors.New("error.category_not_found")
	ErrCategoryInUse       = errors.New("error.category_in_use")
	ErrBannerNotFound      = errors.New("error.banner_not_found")
	ErrRatingScoreInvalid  = errors.New("error.rating_score_invalid")
	ErrRatingNotPermitted  = errors.New("error.rating_not_permitted")
	ErrOrderNotFound       = errors.New("error.order_not_found")
	ErrOrderStatusInvalid  = errors.New("error.order_status_invalid")
	ErrStockChanged        = errors.New("error.stock_changed")
	ErrPriceChanged        = errors.New("error.price_changed")
	ErrCheckoutFormInvalid = errors.New("error.checkout_form_invalid")
	ErrPaymentMethodInvalid = errors.New("error.payment_method_invalid")
	ErrSessionKeyInvalid   = errors.New("error.session_key_invalid")

	ErrEmailServiceDisabled      = errors.New("error.email_service_disabled")
	ErrEmailServiceNotConfigured = errors.New("error.email_service_not_configured")
)
