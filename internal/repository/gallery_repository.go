package repository

import (
	"errors"
	"strings"

	"github.com/honeyfoods-shop/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository 展示图数据访问接口
type GalleryRepository interface {
	List(filter GalleryListFilter) ([]models.GalleryImage, int64, error)
	GetByID(id uint) (*models.GalleryImage, error)
	Create(image *models.GalleryImage) error
	Update(image *models.GalleryImage) error
	Delete(id uint) error
}

// GormGalleryRepository GORM 实现
type GormGalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository 创建展示图仓库
func NewGalleryRepository(db *gorm.DB) *GormGalleryRepository {
	return &GormGalleryRepository{db: db}
}

// List 展示图列表
func (r *GormGalleryRepository) List(filter GalleryListFilter) ([]models.GalleryImage, int64, error) {
	var images []models.GalleryImage

	query := r.db.Model(&models.GalleryImage{})
	if filter.OnlyVisible {
		query = query.Where("is_visible = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, created_at DESC").Find(&images).Error; err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// GetByID 根据 ID 获取展示图
func (r *GormGalleryRepository) GetByID(id uint) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建展示图
func (r *GormGalleryRepository) Create(image *models.GalleryImage) error {
	return r.db.Create(image).Error
}

// Update 更新展示图
func (r *GormGalleryRepository) Update(image *models.GalleryImage) error {
	return r.db.Save(image).Error
}

// Delete 删除展示图
func (r *GormGalleryRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.GalleryImage{}, id).Error
}
