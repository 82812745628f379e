package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项（按购物车令牌隔离的游客购物车）
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                       // 主键
	CartToken string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_token_product" json:"-"`      // 购物车令牌
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_token_product" json:"product_id"`              // 商品ID
	Flavor    string         `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_cart_token_product" json:"flavor,omitempty"` // 口味（同商品不同口味为独立条目）
	Quantity  int            `gorm:"not null" json:"quantity"`                                                   // 数量

	Note         string `gorm:"type:varchar(500)" json:"note,omitempty"`         // 条目备注
	EventDate    string `gorm:"type:varchar(20)" json:"event_date,omitempty"`    // 蛋糕交付日期
	EventTitle   string `gorm:"type:varchar(200)" json:"event_title,omitempty"`  // 蛋糕题字
	Instructions string `gorm:"type:varchar(500)" json:"instructions,omitempty"` // 蛋糕定制说明

	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
