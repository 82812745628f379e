package service

import (
	"context"
	"strings"

	"github.com/honeyfoods-shop/internal/config"
	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/payment/stripe"
	"github.com/honeyfoods-shop/internal/repository"
)

// PaymentService 支付服务
type PaymentService struct {
	cfg         *config.Config
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	orderSvc    *OrderService
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.Config, paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, orderSvc *OrderService) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		orderSvc:    orderSvc,
	}
}

// stripeConfig 从应用配置组装 Stripe 渠道配置
func (s *PaymentService) stripeConfig() (*stripe.Config, error) {
	if s.cfg == nil {
		return nil, ErrPaymentNotConfigured
	}
	cfg := &stripe.Config{
		SecretKey:               s.cfg.Payment.Stripe.SecretKey,
		PublishableKey:          s.cfg.Payment.Stripe.PublishableKey,
		WebhookSecret:           s.cfg.Payment.Stripe.WebhookSecret,
		APIBaseURL:              s.cfg.Payment.Stripe.APIBaseURL,
		WebhookToleranceSeconds: s.cfg.Payment.Stripe.WebhookToleranceSeconds,
	}
	cfg.Normalize()
	if err := stripe.ValidateConfig(cfg); err != nil {
		return nil, ErrPaymentNotConfigured
	}
	return cfg, nil
}

// CreateIntentResult 创建支付返回
type CreateIntentResult struct {
	PaymentID      uint         `json:"payment_id"`
	ClientSecret   string       `json:"client_secret"`
	PublishableKey string       `json:"publishable_key"`
	Amount         models.Money `json:"amount"`
	Currency       string       `json:"currency"`
}

// CreateIntentForOrder 为订单创建 Stripe PaymentIntent。
// 游客凭订单号与邮箱发起支付；已支付订单拒绝重复创建。
func (s *PaymentService) CreateIntentForOrder(ctx context.Context, orderNo, email string) (*CreateIntentResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	order, err := s.orderRepo.GetByOrderNoAndEmail(orderNo, email)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.OrderPaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusTransition
	}

	cfg, err := s.stripeConfig()
	if err != nil {
		return nil, err
	}

	// 复用未完成的支付记录，避免重复创建 intent
	existing, err := s.paymentRepo.GetLatestByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == constants.PaymentStatusPending && existing.ClientSecret != "" {
		return &CreateIntentResult{
			PaymentID:      existing.ID,
			ClientSecret:   existing.ClientSecret,
			PublishableKey: cfg.PublishableKey,
			Amount:         existing.Amount,
			Currency:       existing.Currency,
		}, nil
	}

	payment := &models.Payment{
		OrderID:  order.ID,
		Provider: constants.PaymentProviderStripe,
		Amount:   order.TotalAmount,
		Currency: order.Currency,
		Status:   constants.PaymentStatusInitiated,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	created, err := stripe.CreateIntent(ctx, cfg, stripe.CreateInput{
		OrderNo:      order.OrderNo,
		PaymentID:    payment.ID,
		Amount:       order.TotalAmount.String(),
		Currency:     order.Currency,
		Description:  "Order " + order.OrderNo,
		ReceiptEmail: order.CustomerEmail,
	})
	if err != nil {
		payment.Status = constants.PaymentStatusFailed
		if updateErr := s.paymentRepo.Update(payment); updateErr != nil {
			logger.Warnw("payment_mark_failed_error", "payment_id", payment.ID, "error", updateErr)
		}
		return nil, err
	}

	payment.ProviderRef = created.PaymentIntentID
	payment.ClientSecret = created.ClientSecret
	payment.Status = constants.PaymentStatusPending
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	logger.Infow("payment_intent_created",
		"order_no", order.OrderNo,
		"payment_id", payment.ID,
		"provider_ref", payment.ProviderRef,
	)
	return &CreateIntentResult{
		PaymentID:      payment.ID,
		ClientSecret:   payment.ClientSecret,
		PublishableKey: cfg.PublishableKey,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
	}, nil
}

// QueryIntentStatus 主动向 Stripe 查询支付状态并同步本地记录
func (s *PaymentService) QueryIntentStatus(ctx context.Context, paymentID uint) (*models.Payment, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusSucceeded || payment.Status == constants.PaymentStatusFailed {
		return payment, nil
	}
	if strings.TrimSpace(payment.ProviderRef) == "" {
		return payment, nil
	}

	cfg, err := s.stripeConfig()
	if err != nil {
		return nil, err
	}
	result, err := stripe.QueryIntent(ctx, cfg, payment.ProviderRef)
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case "success":
		if err := s.settlePayment(payment, result.Raw, result.PaidAt); err != nil {
			return nil, err
		}
	case "failed":
		if err := s.failPayment(payment, result.Raw); err != nil {
			return nil, err
		}
	}
	return payment, nil
}
