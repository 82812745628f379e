package admin

import (
	"github.com/honeyfoods-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStoreSettings 获取店铺设置
func (h *Handler) GetStoreSettings(c *gin.Context) {
	settings, err := h.SettingService.GetStoreSettings(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load store settings", err)
		return
	}
	response.Success(c, settings)
}

// UpdateStoreSettingsRequest 更新店铺设置请求
type UpdateStoreSettingsRequest struct {
	Value map[string]interface{} `json:"value" binding:"required"`
}

// UpdateStoreSettings 更新店铺设置并失效缓存
func (h *Handler) UpdateStoreSettings(c *gin.Context) {
	var req UpdateStoreSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	settings, err := h.SettingService.UpdateStoreSettings(c.Request.Context(), req.Value)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to save store settings", err)
		return
	}
	response.Success(c, settings)
}
