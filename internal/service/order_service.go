package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"html"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/queue"
	"github.com/honeyfoods-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 客户端提交金额与服务端重算金额的允许误差
var orderTotalTolerance = decimal.NewFromFloat(0.01)

// 客户信息字段长度上限
const (
	maxCustomerNameLen  = 100
	maxCustomerEmailLen = 255
	maxCustomerPhoneLen = 20
	maxAddressLen       = 500
	maxCityLen          = 100
	maxPostcodeLen      = 20
	maxNotesLen         = 500
)

// 订单/购物车条目附加字段长度上限
const (
	maxItemNoteLen     = 500
	maxEventDateLen    = 20
	maxEventTitleLen   = 200
	maxInstructionsLen = 500
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	settingSvc  *SettingService
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, settingSvc *SettingService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		settingSvc:  settingSvc,
		queueClient: queueClient,
	}
}

// CreateOrderItemInput 创建订单项输入
type CreateOrderItemInput struct {
	ProductID    uint   `json:"product_id"`
	Flavor       string `json:"flavor"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
	EventDate    string `json:"event_date"`
	EventTitle   string `json:"event_title"`
	Instructions string `json:"instructions"`
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	DeliveryMethod   string
	DeliveryAddress  string
	DeliveryCity     string
	DeliveryPostcode string
	Notes            string
	Items            []CreateOrderItemInput

	// 客户端展示金额，缺省字段跳过比对
	ClaimedSubtotal    *models.Money
	ClaimedDeliveryFee *models.Money
	ClaimedTotal       *models.Money

	CartToken string
	ClientIP  string
}

// CreateOrder 创建订单。
// 流程：结构校验 -> 客户信息清洗 -> 商品存在性校验 -> 按目录重算价格 ->
// 配送费计算 -> 客户端金额比对 -> 起订金额校验 -> 事务落库并推送通知。
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// 结构校验
	items, err := mergeCreateOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderEmpty
	}
	method := strings.ToLower(strings.TrimSpace(input.DeliveryMethod))
	if method != constants.DeliveryMethodDelivery && method != constants.DeliveryMethodPickup {
		return nil, ErrInvalidDeliveryMethod
	}

	// 客户信息清洗
	customer, err := sanitizeCustomerInfo(input)
	if err != nil {
		return nil, err
	}
	if method == constants.DeliveryMethodDelivery && customer.Address == "" {
		return nil, ErrDeliveryAddressMissing
	}

	// 商品存在性校验：未知 ID 全量收集后一次性拒绝
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}
	unknown := make([]uint, 0)
	for _, id := range ids {
		if _, ok := productByID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownProductsError{IDs: unknown}
	}

	// 按目录价重算，客户端价格一律不信任
	settings, err := s.settingSvc.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product := productByID[item.ProductID]
		if !product.IsAvailable {
			return nil, &UnavailableProductError{Name: product.Name}
		}
		flavor := strings.TrimSpace(item.Flavor)
		if !product.HasFlavor(flavor) {
			return nil, ErrInvalidFlavor
		}
		lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Flavor:       flavor,
			UnitPrice:    product.PriceAmount,
			Quantity:     item.Quantity,
			TotalPrice:   models.NewMoneyFromDecimal(lineTotal),
			Note:         sanitizeText(item.Note, maxItemNoteLen),
			EventDate:    sanitizeText(item.EventDate, maxEventDateLen),
			EventTitle:   sanitizeText(item.EventTitle, maxEventTitleLen),
			Instructions: sanitizeText(item.Instructions, maxInstructionsLen),
		})
	}

	// 配送费与总额
	subtotalMoney := models.NewMoneyFromDecimal(subtotal)
	deliveryFee := settings.DeliveryFeeFor(method, subtotalMoney)
	total := subtotal.Add(deliveryFee.Decimal).Round(2)

	// 客户端金额比对（小计、配送费、总额各自容差 0.01）
	if claimedMismatch(input.ClaimedSubtotal, subtotal) ||
		claimedMismatch(input.ClaimedDeliveryFee, deliveryFee.Decimal) ||
		claimedMismatch(input.ClaimedTotal, total) {
		logger.Warnw("order_total_mismatch",
			"calculated_subtotal", subtotal.String(),
			"calculated_total", total.String(),
			"client_ip", input.ClientIP,
		)
		return nil, ErrOrderTotalMismatch
	}

	// 起订金额校验（按商品小计）
	if subtotal.LessThan(settings.MinOrderAmount.Decimal) {
		return nil, ErrOrderBelowMinimum
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:          generateOrderNo(),
		CustomerName:     customer.Name,
		CustomerEmail:    customer.Email,
		CustomerPhone:    customer.Phone,
		DeliveryMethod:   method,
		DeliveryAddress:  customer.Address,
		DeliveryCity:     customer.City,
		DeliveryPostcode: customer.Postcode,
		Notes:            customer.Notes,
		Status:           constants.OrderStatusPending,
		PaymentStatus:    constants.OrderPaymentStatusPending,
		Currency:         settings.Currency,
		Subtotal:         subtotalMoney,
		DeliveryFee:      deliveryFee,
		TotalAmount:      models.NewMoneyFromDecimal(total),
		ClientIP:         strings.TrimSpace(input.ClientIP),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		if cartToken := strings.TrimSpace(input.CartToken); cartToken != "" {
			if err := s.cartRepo.WithTx(tx).ClearByToken(cartToken); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = orderItems

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  order.Status,
		}); err != nil {
			logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"delivery_method", order.DeliveryMethod,
		"total", order.TotalAmount.String(),
	)
	return order, nil
}

// GetByOrderNoAndEmail 游客凭订单号与邮箱查询订单
func (s *OrderService) GetByOrderNoAndEmail(orderNo, email string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(normalized); err != nil {
		return nil, ErrInvalidEmail
	}
	order, err := s.orderRepo.GetByOrderNoAndEmail(orderNo, normalized)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetAdminByID 获取后台订单详情
func (s *OrderService) GetAdminByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 获取后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// sanitizedCustomer 清洗后的客户信息
type sanitizedCustomer struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	City     string
	Postcode string
	Notes    string
}

// sanitizeCustomerInfo 清洗客户提交的文本字段：
// 转义 HTML、截断超长字段、邮箱统一小写并校验格式。
func sanitizeCustomerInfo(input CreateOrderInput) (*sanitizedCustomer, error) {
	name := sanitizeText(input.CustomerName, maxCustomerNameLen)
	if name == "" {
		return nil, ErrInvalidOrderItem
	}

	// 邮箱可选，提供时才校验格式
	email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	if len(email) > maxCustomerEmailLen {
		email = email[:maxCustomerEmailLen]
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	return &sanitizedCustomer{
		Name:     name,
		Email:    email,
		Phone:    sanitizeText(input.CustomerPhone, maxCustomerPhoneLen),
		Address:  sanitizeText(input.DeliveryAddress, maxAddressLen),
		City:     sanitizeText(input.DeliveryCity, maxCityLen),
		Postcode: sanitizeText(input.DeliveryPostcode, maxPostcodeLen),
		Notes:    sanitizeText(input.Notes, maxNotesLen),
	}, nil
}

// sanitizeText 按字符数截断原文后再转义，避免截断多字节字符或转义实体
func sanitizeText(raw string, maxLen int) string {
	cleaned := strings.TrimSpace(raw)
	if maxLen > 0 {
		if runes := []rune(cleaned); len(runes) > maxLen {
			cleaned = strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return html.EscapeString(cleaned)
}

// claimedMismatch 比对客户端展示金额与服务端重算值，负数直接视为不一致
func claimedMismatch(claimed *models.Money, calculated decimal.Decimal) bool {
	if claimed == nil {
		return false
	}
	if claimed.Decimal.IsNegative() {
		return true
	}
	return claimed.Decimal.Sub(calculated).Abs().GreaterThan(orderTotalTolerance)
}

// mergeCreateOrderItems 合并重复（商品, 口味）的下单项并校验数量
func mergeCreateOrderItems(items []CreateOrderItemInput) ([]CreateOrderItemInput, error) {
	type itemKey struct {
		ProductID uint
		Flavor    string
	}
	merged := make([]CreateOrderItemInput, 0, len(items))
	index := make(map[itemKey]int, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		key := itemKey{ProductID: item.ProductID, Flavor: strings.TrimSpace(item.Flavor)}
		if idx, ok := index[key]; ok {
			// 重复条目只累加数量，备注与蛋糕字段以首条为准
			merged[idx].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, CreateOrderItemInput{
			ProductID:    item.ProductID,
			Flavor:       key.Flavor,
			Quantity:     item.Quantity,
			Note:         item.Note,
			EventDate:    item.EventDate,
			EventTitle:   item.EventTitle,
			Instructions: item.Instructions,
		})
	}
	return merged, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("HF%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
