package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	CustomerName    string         `gorm:"type:varchar(100);not null" json:"customer_name"`               // 客户姓名
	CustomerEmail   string         `gorm:"index;not null" json:"customer_email"`                          // 客户邮箱
	CustomerPhone   string         `gorm:"type:varchar(20)" json:"customer_phone"`                        // 客户电话
	DeliveryMethod  string         `gorm:"type:varchar(20);index;not null" json:"delivery_method"`        // 配送方式（delivery/pickup）
	DeliveryAddress string         `gorm:"type:varchar(500)" json:"delivery_address"`                     // 配送地址
	DeliveryCity    string         `gorm:"type:varchar(100)" json:"delivery_city"`                        // 配送城市
	DeliveryPostcode string        `gorm:"type:varchar(20)" json:"delivery_postcode"`                     // 邮政编码
	Notes           string         `gorm:"type:varchar(500)" json:"notes"`                                // 订单备注
	Status          string         `gorm:"index;not null" json:"status"`                                  // 履约状态
	PaymentStatus   string         `gorm:"index;not null" json:"payment_status"`                          // 支付状态
	Currency        string         `gorm:"not null" json:"currency"`                                      // 币种
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`         // 商品小计
	DeliveryFee     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`     // 配送费
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 应付总额
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                   // 下单客户端IP
	PaidAt          *time.Time     `gorm:"index" json:"paid_at"`                                          // 支付时间
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at"`                                     // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
