package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListAdmin(category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.GetAdminByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}

	response.Success(c, product)
}

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	PriceAmount      float64  `json:"price_amount" binding:"required"`
	Category         string   `json:"category"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additional_images"`
	Flavors          []string `json:"flavors"`
	IsAvailable      *bool    `json:"is_available"`
	IsFeatured       *bool    `json:"is_featured"`
	SortOrder        int      `json:"sort_order"`
}

func (r *ProductRequest) toModel() *models.Product {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	featured := false
	if r.IsFeatured != nil {
		featured = *r.IsFeatured
	}
	return &models.Product{
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      strings.TrimSpace(r.Description),
		PriceAmount:      models.NewMoneyFromDecimal(decimal.NewFromFloat(r.PriceAmount)),
		Category:         strings.TrimSpace(r.Category),
		Image:            strings.TrimSpace(r.Image),
		AdditionalImages: r.AdditionalImages,
		Flavors:          r.Flavors,
		IsAvailable:      available,
		IsFeatured:       featured,
		SortOrder:        r.SortOrder,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product := req.toModel()
	if err := h.ProductService.Create(product); err != nil {
		if errors.Is(err, service.ErrDuplicateSlug) {
			respondError(c, response.CodeBadRequest, "slug already exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create product", err)
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product := req.toModel()
	product.ID = uint(id)
	if err := h.ProductService.Update(product); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		if errors.Is(err, service.ErrDuplicateSlug) {
			respondError(c, response.CodeBadRequest, "slug already in use", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update product", err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	if err := h.ProductService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}

	response.Success(c, nil)
}
