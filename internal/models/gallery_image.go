package models

import (
	"time"

	"gorm.io/gorm"
)

// GalleryImage 作品展示图
type GalleryImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Title     string         `gorm:"type:varchar(200)" json:"title"`          // 标题
	Image     string         `gorm:"type:varchar(500);not null" json:"image"` // 图片地址
	Category  string         `gorm:"type:varchar(100);index" json:"category"` // 分类标签
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`       // 排序权重
	IsVisible bool           `gorm:"default:true;index" json:"is_visible"`    // 是否展示
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (GalleryImage) TableName() string {
	return "gallery_images"
}
