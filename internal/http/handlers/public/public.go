package public

import (
	"strings"
	"time"

	"github.com/honeyfoods-shop/internal/cache"
	"github.com/honeyfoods-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取前台全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	settings, err := h.SettingService.GetStoreSettings(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load store config", err)
		return
	}

	data := map[string]interface{}{
		"store_name":              settings.StoreName,
		"store_email":             settings.StoreEmail,
		"store_phone":             settings.StorePhone,
		"store_address":           settings.StoreAddress,
		"currency":                settings.Currency,
		"delivery_fee":            settings.DeliveryFee,
		"free_delivery_threshold": settings.FreeDeliveryThreshold,
		"free_delivery_message":   settings.RenderFreeDeliveryMessage(),
		"min_order_amount":        settings.MinOrderAmount,
		"stripe_publishable_key":  strings.TrimSpace(h.Config.Payment.Stripe.PublishableKey),
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}
