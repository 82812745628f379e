package repository

import (
	"errors"

	"github.com/honeyfoods-shop/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByToken(cartToken string) ([]models.CartItem, error)
	GetByTokenProductFlavor(cartToken string, productID uint, flavor string) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByTokenProductFlavor(cartToken string, productID uint, flavor string) error
	ClearByToken(cartToken string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByToken 获取购物车项
func (r *GormCartRepository) ListByToken(cartToken string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_token = ?", cartToken).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByTokenProductFlavor 获取单个购物车项
func (r *GormCartRepository) GetByTokenProductFlavor(cartToken string, productID uint, flavor string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_token = ? AND product_id = ? AND flavor = ?", cartToken, productID, flavor).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或更新购物车项
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cart_token = ? AND product_id = ? AND flavor = ?", item.CartToken, item.ProductID, item.Flavor).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"updated_at": item.UpdatedAt,
	}
	// 备注与蛋糕定制字段仅在提交了新值时覆盖，纯数量更新保留加入时的值
	if item.Note != "" {
		updates["note"] = item.Note
	}
	if item.EventDate != "" {
		updates["event_date"] = item.EventDate
	}
	if item.EventTitle != "" {
		updates["event_title"] = item.EventTitle
	}
	if item.Instructions != "" {
		updates["instructions"] = item.Instructions
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteByTokenProductFlavor 删除购物车项
func (r *GormCartRepository) DeleteByTokenProductFlavor(cartToken string, productID uint, flavor string) error {
	return r.db.Where("cart_token = ? AND product_id = ? AND flavor = ?", cartToken, productID, flavor).Delete(&models.CartItem{}).Error
}

// ClearByToken 清空购物车
func (r *GormCartRepository) ClearByToken(cartToken string) error {
	return r.db.Where("cart_token = ?", cartToken).Delete(&models.CartItem{}).Error
}
