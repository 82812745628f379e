package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/provider"
	"github.com/honeyfoods-shop/internal/queue"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskPickupReadyEmail, c.handlePickupReadyEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.loadOrder(payload.OrderID, "worker_order_status_email")
	if err != nil || order == nil {
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:        order.OrderNo,
		CustomerName:   order.CustomerName,
		Status:         status,
		DeliveryMethod: order.DeliveryMethod,
		Amount:         order.TotalAmount,
		Currency:       order.Currency,
	}
	if err := c.EmailService.SendOrderStatusEmail(order.CustomerEmail, input); err != nil {
		if isEmailUnavailable(err) {
			logger.Debugw("worker_order_status_email_skip_disabled", "order_id", order.ID, "order_no", order.OrderNo)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", order.CustomerEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handlePickupReadyEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_pickup_ready_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PickupReadyEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_pickup_ready_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_pickup_ready_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.loadOrder(payload.OrderID, "worker_pickup_ready_email")
	if err != nil || order == nil {
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_pickup_ready_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	storeAddress := ""
	if c.SettingService != nil {
		if settings, err := c.SettingService.GetStoreSettings(ctx); err != nil {
			logger.Warnw("worker_pickup_ready_email_load_settings_failed", "order_id", order.ID, "error", err)
		} else if settings != nil {
			storeAddress = settings.StoreAddress
		}
	}

	input := service.OrderStatusEmailInput{
		OrderNo:        order.OrderNo,
		CustomerName:   order.CustomerName,
		Status:         order.Status,
		DeliveryMethod: order.DeliveryMethod,
		Amount:         order.TotalAmount,
		Currency:       order.Currency,
	}
	if err := c.EmailService.SendPickupReadyEmail(order.CustomerEmail, input, storeAddress); err != nil {
		if isEmailUnavailable(err) {
			logger.Debugw("worker_pickup_ready_email_skip_disabled", "order_id", order.ID, "order_no", order.OrderNo)
			return nil
		}
		logger.Warnw("worker_pickup_ready_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", order.CustomerEmail,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) loadOrder(orderID uint, logPrefix string) (*models.Order, error) {
	order, err := c.OrderRepo.GetByID(orderID)
	if err != nil {
		logger.Warnw(logPrefix+"_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, err
	}
	if order == nil {
		logger.Debugw(logPrefix+"_skip_order_not_found", "order_id", orderID)
		return nil, nil
	}
	if strings.TrimSpace(order.CustomerEmail) == "" {
		logger.Debugw(logPrefix+"_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil, nil
	}
	return order, nil
}

// 邮件服务未启用或未配置时静默跳过，不触发重试
func isEmailUnavailable(err error) bool {
	return errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured)
}
