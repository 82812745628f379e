package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/provider"
	"github.com/honeyfoods-shop/internal/queue"
	"github.com/honeyfoods-shop/internal/repository"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	container := &provider.Container{
		OrderRepo:      repository.NewOrderRepository(db),
		SettingService: service.NewSettingService(repository.NewSettingRepository(db)),
	}
	return NewConsumer(container), db
}

func TestIsEmailUnavailable(t *testing.T) {
	if !isEmailUnavailable(service.ErrEmailServiceDisabled) {
		t.Fatalf("disabled email service should be skipped")
	}
	if !isEmailUnavailable(fmt.Errorf("wrap: %w", service.ErrEmailServiceNotConfigured)) {
		t.Fatalf("wrapped not-configured error should be skipped")
	}
	if isEmailUnavailable(errors.New("smtp timeout")) {
		t.Fatalf("transport errors should trigger retry")
	}
}

func TestHandleOrderStatusEmailSkipsInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	// 非法 JSON 返回错误触发重试
	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte("not-json"))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}

	// order_id 为 0 静默跳过
	task = asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got: %v", err)
	}

	// 订单不存在静默跳过
	task = asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":999}`))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got: %v", err)
	}
}

func TestHandleOrderStatusEmailSkipsEmptyReceiver(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	order := &models.Order{
		OrderNo:        "HF20260101000000111111",
		CustomerName:   "Alex Taylor",
		CustomerEmail:  "",
		DeliveryMethod: "delivery",
		Status:         "confirmed",
		PaymentStatus:  "paid",
		Currency:       "GBP",
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte(fmt.Sprintf(`{"order_id":%d}`, order.ID)))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("order without receiver should be skipped, got: %v", err)
	}
}

func TestHandlePickupReadyEmailSkipsWithoutEmailService(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	order := &models.Order{
		OrderNo:        "HF20260101000000222222",
		CustomerName:   "Sam Reed",
		CustomerEmail:  "sam@example.com",
		DeliveryMethod: "pickup",
		Status:         "ready_for_pickup",
		PaymentStatus:  "paid",
		Currency:       "GBP",
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	// EmailService 为 nil 时跳过而非重试
	task := asynq.NewTask(queue.TaskPickupReadyEmail, []byte(fmt.Sprintf(`{"order_id":%d}`, order.ID)))
	if err := consumer.handlePickupReadyEmail(context.Background(), task); err != nil {
		t.Fatalf("missing email service should be skipped, got: %v", err)
	}
}
