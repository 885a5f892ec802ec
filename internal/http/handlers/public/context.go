package public

import (
	"strings"

	"github.com/petmart-next/internal/constants"
	"github.com/petmart-next/internal/http/handlers/shared"
	"github.com/petmart-next/internal/http/response"
	"github.com/petmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "user_id")
}

// cartOwner 解析购物车归属：已登录用户优先，否则取会话请求头。
func (h *Handler) cartOwner(c *gin.Context) (service.CartOwner, bool) {
	if value, exists := c.Get("user_id"); exists {
		if uid, ok := value.(uint); ok && uid != 0 {
			return service.UserOwner(uid), true
		}
	}
	sessionKey := strings.TrimSpace(c.GetHeader(constants.CartSessionHeader))
	if sessionKey == "" || !h.CartService.ValidSessionKey(sessionKey) {
		respondError(c, response.CodeBadRequest, "error.cart_session_required", nil)
		return service.CartOwner{}, false
	}
	return service.SessionOwner(sessionKey), true
}
