package public

import (
	"strings"

	handlershared "github.com/honeyfoods-shop/internal/http/handlers/shared"
	"github.com/honeyfoods-shop/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// cartTokenHeader 购物车令牌请求头
const cartTokenHeader = "X-Cart-Token"

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// getCartToken 读取购物车令牌，缺失时直接返回错误响应
func getCartToken(c *gin.Context) (string, bool) {
	token := strings.TrimSpace(c.GetHeader(cartTokenHeader))
	if token == "" {
		respondError(c, response.CodeBadRequest, "cart token is required", nil)
		return "", false
	}
	return token, true
}
