package service

import (
	"regexp"
	"strings"

	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListPublic 获取前台商品列表（仅在售）
func (s *ProductService) ListPublic(category, search string, featured bool, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Category:      category,
		Search:        search,
		OnlyAvailable: true,
		OnlyFeatured:  featured,
	}
	return s.repo.List(filter)
}

// ListCategories 获取商品分类列表
func (s *ProductService) ListCategories() ([]string, error) {
	return s.repo.ListCategories()
}

// GetPublicBySlug 获取前台商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: category,
		Search:   search,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品，slug 为空时由名称派生
func (s *ProductService) Create(product *models.Product) error {
	if product == nil {
		return ErrInvalidOrderItem
	}
	product.Name = strings.TrimSpace(product.Name)
	product.Slug = strings.TrimSpace(product.Slug)
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	count, err := s.repo.CountBySlug(product.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSlug
	}
	return s.repo.Create(product)
}

// Update 更新商品
func (s *ProductService) Update(product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrNotFound
	}
	product.Name = strings.TrimSpace(product.Name)
	product.Slug = strings.TrimSpace(product.Slug)
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	excludeID := product.ID
	count, err := s.repo.CountBySlug(product.Slug, &excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSlug
	}
	return s.repo.Update(product)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 将商品名称转换为 URL 友好的 slug
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	slug := slugInvalidChars.ReplaceAllString(lowered, "-")
	return strings.Trim(slug, "-")
}
