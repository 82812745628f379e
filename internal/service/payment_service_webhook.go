package service

import (
	"time"

	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/payment/stripe"

	"gorm.io/gorm"
)

// HandleStripeWebhook 校验签名并处理 Stripe 回调。
// 签名校验失败时不做任何状态变更；重复事件幂等处理。
func (s *PaymentService) HandleStripeWebhook(headers map[string]string, body []byte) error {
	cfg, err := s.stripeConfig()
	if err != nil {
		return err
	}
	result, err := stripe.VerifyAndParseWebhook(cfg, headers, body, time.Now())
	if err != nil {
		return err
	}

	payment, err := s.resolveWebhookPayment(result)
	if err != nil {
		return err
	}
	if payment == nil {
		logger.Warnw("stripe_webhook_payment_not_found",
			"event_id", result.EventID,
			"provider_ref", result.PaymentIntentID,
		)
		return ErrPaymentNotFound
	}

	switch result.Status {
	case "success":
		return s.settlePayment(payment, result.Raw, result.PaidAt)
	case "failed":
		return s.failPayment(payment, result.Raw)
	default:
		logger.Infow("stripe_webhook_ignored",
			"event_id", result.EventID,
			"event_type", result.EventType,
			"status", result.Status,
		)
		return nil
	}
}

func (s *PaymentService) resolveWebhookPayment(result *stripe.WebhookResult) (*models.Payment, error) {
	if result.PaymentID > 0 {
		payment, err := s.paymentRepo.GetByID(result.PaymentID)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			return payment, nil
		}
	}
	if result.PaymentIntentID != "" {
		return s.paymentRepo.GetByProviderRef(constants.PaymentProviderStripe, result.PaymentIntentID)
	}
	return nil, nil
}

// settlePayment 支付成功：支付记录、订单支付状态与履约状态在同一事务内更新。
// pending 订单同步推进为 confirmed。
func (s *PaymentService) settlePayment(payment *models.Payment, payload map[string]interface{}, paidAt *time.Time) error {
	if payment.Status == constants.PaymentStatusSucceeded {
		return nil
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	now := time.Now()
	if paidAt == nil {
		paidAt = &now
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		payment.Status = constants.PaymentStatusSucceeded
		payment.PaidAt = paidAt
		payment.CallbackAt = &now
		payment.ProviderPayload = models.JSON(payload)
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"payment_status": constants.OrderPaymentStatusPaid,
			"paid_at":        paidAt,
			"updated_at":     now,
		}
		if CanTransition(order.DeliveryMethod, order.Status, constants.OrderStatusConfirmed) {
			updates["status"] = constants.OrderStatusConfirmed
		}
		return orderRepo.UpdateStatus(order.ID, updates)
	})
	if err != nil {
		return err
	}

	if s.orderSvc != nil {
		s.orderSvc.enqueueStatusEmail(order.ID, constants.OrderStatusConfirmed)
	}

	logger.Infow("payment_settled",
		"payment_id", payment.ID,
		"order_id", order.ID,
		"provider_ref", payment.ProviderRef,
	)
	return nil
}

// failPayment 支付失败或取消：订单支付状态标记失败并取消未推进的订单。
func (s *PaymentService) failPayment(payment *models.Payment, payload map[string]interface{}) error {
	if payment.Status == constants.PaymentStatusSucceeded || payment.Status == constants.PaymentStatusFailed {
		return nil
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		payment.Status = constants.PaymentStatusFailed
		payment.CallbackAt = &now
		payment.ProviderPayload = models.JSON(payload)
		if err := paymentRepo.Update(payment); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"payment_status": constants.OrderPaymentStatusFailed,
			"updated_at":     now,
		}
		if CanTransition(order.DeliveryMethod, order.Status, constants.OrderStatusCancelled) {
			updates["status"] = constants.OrderStatusCancelled
			updates["cancelled_at"] = now
		}
		return orderRepo.UpdateStatus(order.ID, updates)
	})
	if err != nil {
		return err
	}

	logger.Infow("payment_failed",
		"payment_id", payment.ID,
		"order_id", order.ID,
		"provider_ref", payment.ProviderRef,
	)
	return nil
}
