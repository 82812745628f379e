package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminGallery 获取展示图列表 (Admin)
func (h *Handler) GetAdminGallery(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	category := strings.TrimSpace(c.Query("category"))

	images, total, err := h.GalleryService.ListAdmin(category, page, pageSize)
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

// GalleryImageRequest 创建/更新展示图请求
type GalleryImageRequest struct {
	Title     string `json:"title"`
	Image     string `json:"image" binding:"required"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
	IsVisible *bool  `json:"is_visible"`
}

func (r *GalleryImageRequest) toModel() *models.GalleryImage {
	visible := true
	if r.IsVisible != nil {
		visible = *r.IsVisible
	}
	return &models.GalleryImage{
		Title:     r.Title,
		Image:     r.Image,
		Category:  r.Category,
		SortOrder: r.SortOrder,
		IsVisible: visible,
	}
}

// CreateGalleryImage 创建展示图
func (h *Handler) CreateGalleryImage(c *gin.Context) {
	var req GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	image := req.toModel()
	if err := h.GalleryService.Create(image); err != nil {
		respondError(c, response.CodeInternal, "failed to create gallery image", err)
		return
	}
	response.Success(c, image)
}

// UpdateGalleryImage 更新展示图
func (h *Handler) UpdateGalleryImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid image id", nil)
		return
	}
	var req GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	image := req.toModel()
	image.ID = uint(id)
	if err := h.GalleryService.Update(image); err != nil {
		if errors.Is(err, service.ErrGalleryImageNotFound) {
			respondError(c, response.CodeNotFound, "gallery image not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update gallery image", err)
		return
	}
	response.Success(c, image)
}

// DeleteGalleryImage 删除展示图
func (h *Handler) DeleteGalleryImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid image id", nil)
		return
	}

	if err := h.GalleryService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrGalleryImageNotFound) {
			respondError(c, response.CodeNotFound, "gallery image not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete gallery image", err)
		return
	}
	response.Success(c, nil)
}
