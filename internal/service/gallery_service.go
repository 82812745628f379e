package service

import (
	"strings"

	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"
)

// GalleryService 展示图业务服务
type GalleryService struct {
	repo repository.GalleryRepository
}

// NewGalleryService 创建展示图服务
func NewGalleryService(repo repository.GalleryRepository) *GalleryService {
	return &GalleryService{repo: repo}
}

// ListPublic 获取前台展示图列表（仅可见）
func (s *GalleryService) ListPublic(category string, page, pageSize int) ([]models.GalleryImage, int64, error) {
	filter := repository.GalleryListFilter{
		Page:        page,
		PageSize:    pageSize,
		Category:    category,
		OnlyVisible: true,
	}
	return s.repo.List(filter)
}

// ListAdmin 获取后台展示图列表
func (s *GalleryService) ListAdmin(category string, page, pageSize int) ([]models.GalleryImage, int64, error) {
	filter := repository.GalleryListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: category,
	}
	return s.repo.List(filter)
}

// Create 创建展示图
func (s *GalleryService) Create(image *models.GalleryImage) error {
	if image == nil || strings.TrimSpace(image.Image) == "" {
		return ErrGalleryImageNotFound
	}
	image.Title = strings.TrimSpace(image.Title)
	image.Category = strings.TrimSpace(image.Category)
	return s.repo.Create(image)
}

// Update 更新展示图
func (s *GalleryService) Update(image *models.GalleryImage) error {
	if image == nil || image.ID == 0 {
		return ErrGalleryImageNotFound
	}
	existing, err := s.repo.GetByID(image.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrGalleryImageNotFound
	}
	return s.repo.Update(image)
}

// Delete 删除展示图
func (s *GalleryService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrGalleryImageNotFound
	}
	return s.repo.Delete(id)
}
