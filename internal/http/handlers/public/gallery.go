package public

import (
	"strconv"
	"strings"

	"github.com/honeyfoods-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetGallery 获取展示图列表（仅可见）
func (h *Handler) GetGallery(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))

	images, total, err := h.GalleryService.ListPublic(category, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load gallery", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, images, pagination)
}
