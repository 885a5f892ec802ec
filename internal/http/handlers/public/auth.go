package public

import (
	"strings"
	"time"

	"github.com/petmart-next/internal/constants"
	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/logger"
	"github.com/petmart-next/internal/models"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type loginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type authPayload struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// GetCaptcha 获取登录图形验证码
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// Register 用户注册。
// 注册成功视为登录，顺带把匿名购物车合并到新账号。
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeBadRequest, "error.captcha_invalid")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	h.mergeSessionCart(c, user.ID)
	response.Success(c, authPayload{Token: token, ExpiresAt: expiresAt, User: user})
}

// Login 用户登录。
// 登录成功后把匿名购物车合并到账号购物车，请求头会话随之作废。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	ctx := c.Request.Context()
	if err := h.LoginRateLimiter.Allow(ctx, "user", req.Email, c.ClientIP()); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeTooManyRequests, "error.too_many_attempts")
		return
	}
	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeBadRequest, "error.captcha_invalid")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	h.LoginRateLimiter.Reset(ctx, "user", req.Email, c.ClientIP())

	h.mergeSessionCart(c, user.ID)
	response.Success(c, authPayload{Token: token, ExpiresAt: expiresAt, User: user})
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetByID(userID)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.profile_load_failed")
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(userID, req.DisplayName, req.Phone)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.profile_update_failed")
		return
	}
	response.Success(c, user)
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.password_change_failed")
		return
	}
	response.SuccessWithMsg(c, "password_changed", nil)
}

// mergeSessionCart 合并请求头里的匿名购物车，失败不影响登录结果
func (h *Handler) mergeSessionCart(c *gin.Context, userID uint) {
	sessionKey := strings.TrimSpace(c.GetHeader(constants.CartSessionHeader))
	if sessionKey == "" || !h.CartService.ValidSessionKey(sessionKey) {
		return
	}
	if _, err := h.CartService.MergeOnLogin(c.Request.Context(), userID, sessionKey); err != nil {
		logger.Warnw("cart_merge_on_login_failed", "user_id", userID, "error", err)
	}
}
