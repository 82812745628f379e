package service

import (
	"context"
	"testing"

	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"

	"github.com/shopspring/decimal"
)

func TestGetStoreSettingsDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db))

	settings, err := svc.GetStoreSettings(context.Background())
	if err != nil {
		t.Fatalf("get store settings failed: %v", err)
	}
	if settings.StoreName != "Honey Foods" {
		t.Fatalf("unexpected store name: %s", settings.StoreName)
	}
	if settings.Currency != "GBP" {
		t.Fatalf("unexpected currency: %s", settings.Currency)
	}
	if !settings.DeliveryFee.Decimal.Equal(decimal.NewFromFloat(4.50)) {
		t.Fatalf("unexpected delivery fee: %s", settings.DeliveryFee.String())
	}
	if !settings.FreeDeliveryThreshold.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected threshold: %s", settings.FreeDeliveryThreshold.String())
	}
	if !settings.MinOrderAmount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected min order amount: %s", settings.MinOrderAmount.String())
	}
}

func TestGetStoreSettingsMergesStoredValues(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSettingRepository(db)
	svc := NewSettingService(repo)

	if _, err := repo.Upsert("store_config", models.JSON{
		"delivery_fee":  "3.00",
		"store_address": "12 Orchard Lane, London N8 9QT",
	}); err != nil {
		t.Fatalf("upsert setting failed: %v", err)
	}

	settings, err := svc.GetStoreSettings(context.Background())
	if err != nil {
		t.Fatalf("get store settings failed: %v", err)
	}
	if !settings.DeliveryFee.Decimal.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("stored delivery fee not applied: %s", settings.DeliveryFee.String())
	}
	if settings.StoreAddress != "12 Orchard Lane, London N8 9QT" {
		t.Fatalf("stored address not applied: %s", settings.StoreAddress)
	}
	// 未覆盖的键保持默认值
	if !settings.MinOrderAmount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("default min order amount lost: %s", settings.MinOrderAmount.String())
	}
}

func TestUpdateStoreSettingsNormalizes(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db))

	settings, err := svc.UpdateStoreSettings(context.Background(), map[string]interface{}{
		"delivery_fee":     5.25,
		"min_order_amount": -10, // 负金额丢弃
		"currency":         "eur",
		"store_name":       "  Honey Foods Bakery  ",
		"unknown_key":      "dropped",
	})
	if err != nil {
		t.Fatalf("update store settings failed: %v", err)
	}
	if !settings.DeliveryFee.Decimal.Equal(decimal.NewFromFloat(5.25)) {
		t.Fatalf("unexpected delivery fee: %s", settings.DeliveryFee.String())
	}
	if !settings.MinOrderAmount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("negative amount should be dropped, got %s", settings.MinOrderAmount.String())
	}
	if settings.Currency != "EUR" {
		t.Fatalf("currency should be upper-cased, got %s", settings.Currency)
	}
	if settings.StoreName != "Honey Foods Bakery" {
		t.Fatalf("store name should be trimmed, got %q", settings.StoreName)
	}
}

func TestNormalizeStoreSettingValueFiltersUnknownKeys(t *testing.T) {
	normalized := normalizeStoreSettingValue(map[string]interface{}{
		"delivery_fee": "4.5",
		"unknown_key":  "x",
	})
	if _, ok := normalized["unknown_key"]; ok {
		t.Fatalf("unknown key should be filtered")
	}
	if normalized["delivery_fee"] != "4.50" {
		t.Fatalf("money value should be fixed to 2dp, got %v", normalized["delivery_fee"])
	}
}

func TestDeliveryFeeFor(t *testing.T) {
	settings := defaultStoreSettings()

	subBelow := models.NewMoneyFromDecimal(decimal.NewFromInt(30))
	subAbove := models.NewMoneyFromDecimal(decimal.NewFromInt(50))

	if fee := settings.DeliveryFeeFor("pickup", subBelow); !fee.Decimal.IsZero() {
		t.Fatalf("pickup should be free, got %s", fee.String())
	}
	if fee := settings.DeliveryFeeFor("delivery", subAbove); !fee.Decimal.IsZero() {
		t.Fatalf("at threshold should be free, got %s", fee.String())
	}
	if fee := settings.DeliveryFeeFor("delivery", subBelow); !fee.Decimal.Equal(decimal.NewFromFloat(4.50)) {
		t.Fatalf("below threshold should charge fee, got %s", fee.String())
	}
	if fee := settings.DeliveryFeeFor(" Pickup ", subBelow); !fee.Decimal.IsZero() {
		t.Fatalf("method should be normalized, got %s", fee.String())
	}
}

func TestRenderFreeDeliveryMessage(t *testing.T) {
	settings := defaultStoreSettings()
	msg := settings.RenderFreeDeliveryMessage()
	if msg != "Free delivery on orders over £50!" {
		t.Fatalf("unexpected message: %q", msg)
	}

	settings.Currency = "USD"
	settings.FreeDeliveryMessage = "Spend {amount} for free delivery"
	if msg := settings.RenderFreeDeliveryMessage(); msg != "Spend $50 for free delivery" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
