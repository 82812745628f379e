package public

import (
	"strconv"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// MergeCartRequest 购物车合并请求
type MergeCartRequest struct {
	Items []service.MergeInput `json:"items" binding:"required"`
}

// UpdateCartItemRequest 购物车项更新请求
type UpdateCartItemRequest struct {
	Flavor   string `json:"flavor"`
	Quantity int    `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	token, ok := getCartToken(c)
	if !ok {
		return
	}

	view, err := h.CartService.Get(c.Request.Context(), token)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// MergeCart 合并客户端购物车
func (h *Handler) MergeCart(c *gin.Context) {
	token, ok := getCartToken(c)
	if !ok {
		return
	}
	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	view, err := h.CartService.Merge(c.Request.Context(), token, req.Items)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 设置购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	token, ok := getCartToken(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	view, err := h.CartService.SetQuantity(c.Request.Context(), token, uint(productID), req.Flavor, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	token, ok := getCartToken(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	view, err := h.CartService.Remove(c.Request.Context(), token, uint(productID), c.Query("flavor"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	token, ok := getCartToken(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(c.Request.Context(), token); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
