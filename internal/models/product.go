package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name             string         `gorm:"type:varchar(200);not null" json:"name"`                    // 商品名称
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识（由名称派生）
	Description      string         `gorm:"type:text" json:"description"`                              // 商品描述
	PriceAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格金额
	Category         string         `gorm:"type:varchar(100);index" json:"category"`                   // 分类标签
	Image            string         `gorm:"type:varchar(500)" json:"image"`                            // 主图
	AdditionalImages StringArray    `gorm:"type:json" json:"additional_images"`                        // 附加图片
	Flavors          StringArray    `gorm:"type:json" json:"flavors"`                                  // 口味选项
	IsAvailable      bool           `gorm:"default:true;index" json:"is_available"`                    // 是否在售
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`                    // 是否推荐
	SortOrder        int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// HasFlavor 判断口味是否在商品口味列表内
func (p *Product) HasFlavor(flavor string) bool {
	if flavor == "" {
		return true
	}
	for _, f := range p.Flavors {
		if f == flavor {
			return true
		}
	}
	return false
}
