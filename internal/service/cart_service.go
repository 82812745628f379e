package service

import (
	"context"
	"strings"
	"time"

	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"

	"github.com/shopspring/decimal"
)

const maxCartItemQuantity = 99

// CartService 购物车业务服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	settingSvc  *SettingService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, settingSvc *SettingService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		settingSvc:  settingSvc,
	}
}

// CartView 购物车视图（含价格汇总）
type CartView struct {
	Items               []models.CartItem `json:"items"`
	TotalItems          int               `json:"total_items"`
	Subtotal            models.Money      `json:"subtotal"`
	DeliveryFee         models.Money      `json:"delivery_fee"`
	PickupFee           models.Money      `json:"pickup_fee"`
	Total               models.Money      `json:"total"`
	Currency            string            `json:"currency"`
	FreeDeliveryMessage string            `json:"free_delivery_message,omitempty"`
}

// MergeInput 客户端提交的购物车合并项
type MergeInput struct {
	ProductID    uint   `json:"product_id"`
	Flavor       string `json:"flavor"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
	EventDate    string `json:"event_date"`
	EventTitle   string `json:"event_title"`
	Instructions string `json:"instructions"`
}

// Get 获取购物车视图
func (s *CartService) Get(ctx context.Context, cartToken string) (*CartView, error) {
	cartToken = strings.TrimSpace(cartToken)
	if cartToken == "" {
		return nil, ErrCartTokenMissing
	}
	items, err := s.cartRepo.ListByToken(cartToken)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, items)
}

// Merge 合并客户端购物车到服务端。
// 同一（商品, 口味）条目数量相加；数量归并后小于等于 0 的条目删除；
// 未知或已下架商品条目丢弃。
func (s *CartService) Merge(ctx context.Context, cartToken string, inputs []MergeInput) (*CartView, error) {
	cartToken = strings.TrimSpace(cartToken)
	if cartToken == "" {
		return nil, ErrCartTokenMissing
	}

	for _, input := range inputs {
		if input.ProductID == 0 {
			continue
		}
		product, err := s.productRepo.GetByID(input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsAvailable {
			continue
		}
		flavor := strings.TrimSpace(input.Flavor)
		if !product.HasFlavor(flavor) {
			continue
		}

		existing, err := s.cartRepo.GetByTokenProductFlavor(cartToken, input.ProductID, flavor)
		if err != nil {
			return nil, err
		}
		quantity := input.Quantity
		if existing != nil {
			quantity += existing.Quantity
		}
		if quantity <= 0 {
			if existing != nil {
				if err := s.cartRepo.DeleteByTokenProductFlavor(cartToken, input.ProductID, flavor); err != nil {
					return nil, err
				}
			}
			continue
		}
		if quantity > maxCartItemQuantity {
			quantity = maxCartItemQuantity
		}

		item := &models.CartItem{
			CartToken:    cartToken,
			ProductID:    input.ProductID,
			Flavor:       flavor,
			Quantity:     quantity,
			Note:         sanitizeText(input.Note, maxItemNoteLen),
			EventDate:    sanitizeText(input.EventDate, maxEventDateLen),
			EventTitle:   sanitizeText(input.EventTitle, maxEventTitleLen),
			Instructions: sanitizeText(input.Instructions, maxInstructionsLen),
			UpdatedAt:    time.Now(),
		}
		if err := s.cartRepo.Upsert(item); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, cartToken)
}

// SetQuantity 设置购物车项数量，数量小于等于 0 即删除
func (s *CartService) SetQuantity(ctx context.Context, cartToken string, productID uint, flavor string, quantity int) (*CartView, error) {
	cartToken = strings.TrimSpace(cartToken)
	if cartToken == "" {
		return nil, ErrCartTokenMissing
	}
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	flavor = strings.TrimSpace(flavor)

	if quantity <= 0 {
		if err := s.cartRepo.DeleteByTokenProductFlavor(cartToken, productID, flavor); err != nil {
			return nil, err
		}
		return s.Get(ctx, cartToken)
	}
	if quantity > maxCartItemQuantity {
		quantity = maxCartItemQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsAvailable {
		return nil, ErrProductNotFound
	}
	if !product.HasFlavor(flavor) {
		return nil, ErrInvalidFlavor
	}

	item := &models.CartItem{
		CartToken: cartToken,
		ProductID: productID,
		Flavor:    flavor,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartToken)
}

// Remove 删除购物车项
func (s *CartService) Remove(ctx context.Context, cartToken string, productID uint, flavor string) (*CartView, error) {
	cartToken = strings.TrimSpace(cartToken)
	if cartToken == "" {
		return nil, ErrCartTokenMissing
	}
	if err := s.cartRepo.DeleteByTokenProductFlavor(cartToken, productID, strings.TrimSpace(flavor)); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartToken)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, cartToken string) error {
	cartToken = strings.TrimSpace(cartToken)
	if cartToken == "" {
		return ErrCartTokenMissing
	}
	return s.cartRepo.ClearByToken(cartToken)
}

// buildView 按当前目录价格计算购物车汇总
func (s *CartService) buildView(ctx context.Context, items []models.CartItem) (*CartView, error) {
	settings, err := s.settingSvc.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		totalItems += item.Quantity
		lineTotal := item.Product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	subtotalMoney := models.NewMoneyFromDecimal(subtotal)
	deliveryFee := settings.DeliveryFeeFor("delivery", subtotalMoney)

	view := &CartView{
		Items:       items,
		TotalItems:  totalItems,
		Subtotal:    subtotalMoney,
		DeliveryFee: deliveryFee,
		PickupFee:   models.NewMoneyFromDecimal(decimal.Zero),
		Total:       models.NewMoneyFromDecimal(subtotal.Add(deliveryFee.Decimal)),
		Currency:    settings.Currency,
	}
	if deliveryFee.Decimal.GreaterThan(decimal.Zero) {
		view.FreeDeliveryMessage = settings.RenderFreeDeliveryMessage()
	}
	return view, nil
}
