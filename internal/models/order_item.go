package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（下单时的商品快照）
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                         // 商品ID
	ProductName string         `gorm:"type:varchar(200);not null" json:"product_name"`           // 商品名称快照
	Flavor      string         `gorm:"type:varchar(100)" json:"flavor,omitempty"`                // 口味快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照
	Quantity    int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计

	Note         string `gorm:"type:varchar(500)" json:"note,omitempty"`         // 条目备注快照
	EventDate    string `gorm:"type:varchar(20)" json:"event_date,omitempty"`    // 蛋糕交付日期快照
	EventTitle   string `gorm:"type:varchar(200)" json:"event_title,omitempty"`  // 蛋糕题字快照
	Instructions string `gorm:"type:varchar(500)" json:"instructions,omitempty"` // 蛋糕定制说明快照

	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
