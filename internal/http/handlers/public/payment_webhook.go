package public

import (
	"errors"
	"io"
	"strings"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/payment/stripe"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// StripeWebhook Stripe webhook 回调。
// 签名校验失败时不做任何状态变更，直接拒绝。
func (h *Handler) StripeWebhook(c *gin.Context) {
	log := requestLog(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("stripe_webhook_body_read_failed", "error", err)
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	log.Infow("stripe_webhook_received",
		"client_ip", c.ClientIP(),
		"body_size", len(body),
		"stripe_signature", strings.TrimSpace(c.GetHeader("Stripe-Signature")),
	)

	headers := make(map[string]string)
	for key, values := range c.Request.Header {
		if len(values) == 0 {
			continue
		}
		headers[key] = values[0]
	}

	if err := h.PaymentService.HandleStripeWebhook(headers, body); err != nil {
		log.Warnw("stripe_webhook_handle_failed", "error", err)
		switch {
		case errors.Is(err, stripe.ErrSignatureInvalid):
			respondError(c, response.CodeBadRequest, "invalid webhook signature", nil)
		case errors.Is(err, stripe.ErrEventUnsupported):
			respondError(c, response.CodeBadRequest, "unsupported event type", nil)
		case errors.Is(err, service.ErrPaymentNotFound):
			respondError(c, response.CodeNotFound, "payment not found", nil)
		case errors.Is(err, service.ErrPaymentNotConfigured):
			respondError(c, response.CodeInternal, "payment is not configured", nil)
		default:
			respondError(c, response.CodeInternal, "failed to process webhook", err)
		}
		return
	}

	response.Success(c, gin.H{"received": true})
}
