package service

import (
	"errors"
	"testing"

	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		method string
		from   string
		to     string
		want   bool
	}{
		{"delivery", constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{"delivery", constants.OrderStatusConfirmed, constants.OrderStatusPreparing, true},
		{"delivery", constants.OrderStatusPreparing, constants.OrderStatusOutForDelivery, true},
		{"delivery", constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered, true},
		{"delivery", constants.OrderStatusPreparing, constants.OrderStatusReadyForPickup, false},
		{"delivery", constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{"pickup", constants.OrderStatusPreparing, constants.OrderStatusReadyForPickup, true},
		{"pickup", constants.OrderStatusReadyForPickup, constants.OrderStatusPickedUp, true},
		{"pickup", constants.OrderStatusPreparing, constants.OrderStatusOutForDelivery, false},
		// 终态后不允许任何流转
		{"delivery", constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{"pickup", constants.OrderStatusPickedUp, constants.OrderStatusCancelled, false},
		{"delivery", constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		// 非终态均可取消
		{"delivery", constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{"delivery", constants.OrderStatusOutForDelivery, constants.OrderStatusCancelled, true},
		{"pickup", constants.OrderStatusReadyForPickup, constants.OrderStatusCancelled, true},
		// 大小写与空白归一化
		{"Delivery", " Pending ", "CONFIRMED", true},
		// 未知配送方式
		{"courier", constants.OrderStatusPending, constants.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.method, tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q, %q) = %v, want %v", tc.method, tc.from, tc.to, got, tc.want)
		}
	}
}

func seedOrder(t *testing.T, db *gorm.DB, method, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:        "HF20260101000000123456",
		CustomerName:   "Alex Taylor",
		CustomerEmail:  "alex@example.com",
		DeliveryMethod: method,
		Status:         status,
		PaymentStatus:  constants.OrderPaymentStatusPending,
		Currency:       "GBP",
		Subtotal:       models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return order
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)
	order := seedOrder(t, db, constants.DeliveryMethodDelivery, constants.OrderStatusPending)

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("expected ErrOrderStatusTransition, got: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("status should be unchanged, got %s", reloaded.Status)
	}
}

func TestUpdateStatusConfirmsAndCancels(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)
	order := seedOrder(t, db, constants.DeliveryMethodDelivery, constants.OrderStatusPending)

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	cancelled, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("unexpected status: %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at to be set")
	}
}

func TestMarkReadyForPickup(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(t, db)

	deliveryOrder := seedOrder(t, db, constants.DeliveryMethodDelivery, constants.OrderStatusPreparing)
	if _, err := svc.MarkReadyForPickup(deliveryOrder.ID); !errors.Is(err, ErrOrderNotPickup) {
		t.Fatalf("expected ErrOrderNotPickup for delivery order, got: %v", err)
	}

	pickupOrder := &models.Order{
		OrderNo:        "HF20260101000000654321",
		CustomerName:   "Sam Reed",
		CustomerEmail:  "sam@example.com",
		DeliveryMethod: constants.DeliveryMethodPickup,
		Status:         constants.OrderStatusPreparing,
		PaymentStatus:  constants.OrderPaymentStatusPaid,
		Currency:       "GBP",
		Subtotal:       models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
	}
	if err := db.Create(pickupOrder).Error; err != nil {
		t.Fatalf("seed pickup order failed: %v", err)
	}

	updated, err := svc.MarkReadyForPickup(pickupOrder.ID)
	if err != nil {
		t.Fatalf("mark ready for pickup failed: %v", err)
	}
	if updated.Status != constants.OrderStatusReadyForPickup {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	// 已是待取货状态时不允许重复流转
	if _, err := svc.MarkReadyForPickup(pickupOrder.ID); !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("expected ErrOrderStatusTransition on repeat, got: %v", err)
	}
}
