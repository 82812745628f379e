package service

import (
	"strings"
	"time"

	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/queue"
)

// 履约状态流转表，按配送方式区分。
// delivery: pending -> confirmed -> preparing -> out_for_delivery -> delivered
// pickup:   pending -> confirmed -> preparing -> ready_for_pickup -> picked_up
// 终态前的任意状态均可取消。
var fulfillmentTransitions = map[string]map[string][]string{
	constants.DeliveryMethodDelivery: {
		constants.OrderStatusPending:        {constants.OrderStatusConfirmed, constants.OrderStatusCancelled},
		constants.OrderStatusConfirmed:      {constants.OrderStatusPreparing, constants.OrderStatusCancelled},
		constants.OrderStatusPreparing:      {constants.OrderStatusOutForDelivery, constants.OrderStatusCancelled},
		constants.OrderStatusOutForDelivery: {constants.OrderStatusDelivered, constants.OrderStatusCancelled},
	},
	constants.DeliveryMethodPickup: {
		constants.OrderStatusPending:        {constants.OrderStatusConfirmed, constants.OrderStatusCancelled},
		constants.OrderStatusConfirmed:      {constants.OrderStatusPreparing, constants.OrderStatusCancelled},
		constants.OrderStatusPreparing:      {constants.OrderStatusReadyForPickup, constants.OrderStatusCancelled},
		constants.OrderStatusReadyForPickup: {constants.OrderStatusPickedUp, constants.OrderStatusCancelled},
	},
}

// CanTransition 判断订单履约状态在给定配送方式下能否流转
func CanTransition(method, from, to string) bool {
	method = strings.ToLower(strings.TrimSpace(method))
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	table, ok := fulfillmentTransitions[method]
	if !ok {
		return false
	}
	allowed, ok := table[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// UpdateStatus 管理端推进订单履约状态。
// 非法流转拒绝并保持原状态；成功后推送状态通知邮件。
func (s *OrderService) UpdateStatus(id uint, newStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if !CanTransition(order.DeliveryMethod, order.Status, newStatus) {
		return nil, ErrOrderStatusTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	if newStatus == constants.OrderStatusCancelled {
		updates["cancelled_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
		return nil, err
	}
	order.Status = newStatus

	s.enqueueStatusEmail(order.ID, newStatus)

	logger.Infow("order_status_updated",
		"order_no", order.OrderNo,
		"delivery_method", order.DeliveryMethod,
		"status", newStatus,
	)
	return order, nil
}

// MarkReadyForPickup 标记自提订单备好，仅自提订单可用
func (s *OrderService) MarkReadyForPickup(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.DeliveryMethod != constants.DeliveryMethodPickup {
		return nil, ErrOrderNotPickup
	}
	if !CanTransition(order.DeliveryMethod, order.Status, constants.OrderStatusReadyForPickup) {
		return nil, ErrOrderStatusTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     constants.OrderStatusReadyForPickup,
		"updated_at": now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusReadyForPickup

	if s.queueClient != nil {
		if err := s.queueClient.EnqueuePickupReadyEmail(queue.PickupReadyEmailPayload{
			OrderID: order.ID,
		}); err != nil {
			logger.Warnw("pickup_ready_email_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}

	logger.Infow("order_marked_ready_for_pickup", "order_no", order.OrderNo)
	return order, nil
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
}
