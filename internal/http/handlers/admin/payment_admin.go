package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminPayments 获取支付记录列表 (Admin)
func (h *Handler) GetAdminPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		Provider: strings.TrimSpace(c.Query("provider")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if orderID, err := strconv.ParseUint(c.Query("order_id"), 10, 64); err == nil && orderID > 0 {
		filter.OrderID = uint(orderID)
	}
	if from := strings.TrimSpace(c.Query("created_from")); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := strings.TrimSpace(c.Query("created_to")); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	payments, total, err := h.PaymentRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load payments", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, payments, pagination)
}
