package public

import (
	"errors"
	"strconv"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequest 游客发起支付请求
type CreatePaymentRequest struct {
	OrderNo string `json:"order_no" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

// CreatePaymentIntent 为订单创建 Stripe PaymentIntent
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.PaymentService.CreateIntentForOrder(c.Request.Context(), req.OrderNo, req.Email)
	if err != nil {
		respondPaymentCreateError(c, err)
		return
	}
	response.Success(c, result)
}

// GetPaymentStatus 查询支付状态（向 Stripe 同步）
func (h *Handler) GetPaymentStatus(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, response.CodeBadRequest, "invalid payment id", nil)
		return
	}

	payment, err := h.PaymentService.QueryIntentStatus(c.Request.Context(), uint(paymentID))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			respondError(c, response.CodeNotFound, "payment not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to query payment", err)
		return
	}
	response.Success(c, gin.H{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})
}
