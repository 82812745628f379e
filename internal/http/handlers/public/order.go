package public

import (
	"errors"
	"strings"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 游客下单请求。邮箱可选；金额字段兼容数字与字符串两种形式。
type CreateOrderRequest struct {
	CustomerName     string                         `json:"customer_name" binding:"required"`
	CustomerEmail    string                         `json:"customer_email"`
	CustomerPhone    string                         `json:"customer_phone"`
	DeliveryMethod   string                         `json:"delivery_method" binding:"required"`
	DeliveryAddress  string                         `json:"delivery_address"`
	DeliveryCity     string                         `json:"delivery_city"`
	DeliveryPostcode string                         `json:"delivery_postcode"`
	Notes            string                         `json:"notes"`
	Items            []service.CreateOrderItemInput `json:"items" binding:"required"`

	ClaimedSubtotal    *models.Money `json:"subtotal"`
	ClaimedDeliveryFee *models.Money `json:"delivery_fee"`
	ClaimedTotal       *models.Money `json:"total"`
}

// CreateOrder 游客创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		DeliveryMethod:     req.DeliveryMethod,
		DeliveryAddress:    req.DeliveryAddress,
		DeliveryCity:       req.DeliveryCity,
		DeliveryPostcode:   req.DeliveryPostcode,
		Notes:              req.Notes,
		Items:              req.Items,
		ClaimedSubtotal:    req.ClaimedSubtotal,
		ClaimedDeliveryFee: req.ClaimedDeliveryFee,
		ClaimedTotal:       req.ClaimedTotal,
		CartToken:          strings.TrimSpace(c.GetHeader(cartTokenHeader)),
		ClientIP:           c.ClientIP(),
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}

// LookupOrder 游客凭订单号与邮箱查询订单
func (h *Handler) LookupOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Query("order_no"))
	email := strings.TrimSpace(c.Query("email"))
	if orderNo == "" || email == "" {
		respondError(c, response.CodeBadRequest, "order_no and email are required", nil)
		return
	}

	order, err := h.OrderService.GetByOrderNoAndEmail(orderNo, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to load order", err)
		}
		return
	}
	response.Success(c, order)
}
