package public

import (
	"errors"
	"fmt"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderEmpty, code: response.CodeBadRequest, msg: "order must contain at least one item"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "invalid order item"},
	{target: service.ErrInvalidDeliveryMethod, code: response.CodeBadRequest, msg: "invalid delivery method"},
	{target: service.ErrDeliveryAddressMissing, code: response.CodeBadRequest, msg: "delivery address is required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrInvalidFlavor, code: response.CodeBadRequest, msg: "selected flavor is not available"},
	{target: service.ErrOrderTotalMismatch, code: response.CodeBadRequest, msg: "order total does not match current prices"},
	{target: service.ErrOrderBelowMinimum, code: response.CodeBadRequest, msg: "order is below the minimum order amount"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartTokenMissing, code: response.CodeBadRequest, msg: "cart token is required"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "invalid cart item"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrInvalidFlavor, code: response.CodeBadRequest, msg: "selected flavor is not available"},
}

var paymentCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeBadRequest, msg: "order is already paid"},
	{target: service.ErrOrderStatusTransition, code: response.CodeBadRequest, msg: "order cannot be paid"},
	{target: service.ErrPaymentNotConfigured, code: response.CodeInternal, msg: "payment is not configured"},
}

// respondOrderCreateError 下单错误带结构化详情（未知商品 ID 全量返回）
func respondOrderCreateError(c *gin.Context, err error) {
	var unknown *service.UnknownProductsError
	if errors.As(err, &unknown) {
		response.ErrorWithData(c, response.CodeBadRequest, "some products no longer exist", gin.H{
			"unknown_product_ids": unknown.IDs,
		})
		return
	}
	var unavailable *service.UnavailableProductError
	if errors.As(err, &unavailable) {
		respondError(c, response.CodeBadRequest, fmt.Sprintf("product %q is no longer available", unavailable.Name), nil)
		return
	}
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "failed to create order")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
}

func respondPaymentCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentCreateErrorRules, response.CodeInternal, "failed to create payment")
}
