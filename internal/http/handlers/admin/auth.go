package admin

import (
	"time"

	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/models"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type loginPayload struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *models.Admin `json:"admin"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	ctx := c.Request.Context()
	if err := h.LoginRateLimiter.Allow(ctx, "admin", req.Username, c.ClientIP()); err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeTooManyRequests, "error.too_many_attempts")
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	h.LoginRateLimiter.Reset(ctx, "admin", req.Username, c.ClientIP())

	response.Success(c, loginPayload{Token: token, ExpiresAt: expiresAt, Admin: admin})
}

// ChangePassword 修改当前管理员密码
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, adminAuthErrorRules, response.CodeInternal, "error.password_change_failed")
		return
	}
	response.SuccessWithMsg(c, "password_changed", nil)
}
