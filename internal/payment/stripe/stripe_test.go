package stripe

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func signedWebhookHeaders(secret string, body []byte, at time.Time) map[string]string {
	signature := computeSignature(secret, at.Unix(), body)
	return map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", at.Unix(), signature),
	}
}

func TestVerifyAndParseWebhookSucceeded(t *testing.T) {
	cfg := &Config{
		SecretKey:     "sk_test_123",
		WebhookSecret: "whsec_test",
	}
	cfg.Normalize()

	now := time.Now()
	body := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_123",
				"amount_received": 3650,
				"currency": "gbp",
				"created": 1756700000,
				"status": "succeeded",
				"metadata": {"payment_id": "7", "order_no": "HF20260101000000123456"}
			}
		}
	}`)

	result, err := VerifyAndParseWebhook(cfg, signedWebhookHeaders(cfg.WebhookSecret, body, now), body, now)
	if err != nil {
		t.Fatalf("verify webhook failed: %v", err)
	}
	if result.EventID != "evt_1" || result.EventType != "payment_intent.succeeded" {
		t.Fatalf("unexpected event: %s %s", result.EventID, result.EventType)
	}
	if result.Status != "success" {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.PaymentID != 7 || result.OrderNo != "HF20260101000000123456" {
		t.Fatalf("unexpected metadata: %d %s", result.PaymentID, result.OrderNo)
	}
	if result.PaymentIntentID != "pi_123" {
		t.Fatalf("unexpected intent id: %s", result.PaymentIntentID)
	}
	if result.Amount != "36.50" || result.Currency != "GBP" {
		t.Fatalf("unexpected amount: %s %s", result.Amount, result.Currency)
	}
	if result.PaidAt == nil || result.PaidAt.Unix() != 1756700000 {
		t.Fatalf("unexpected paid_at: %v", result.PaidAt)
	}
}

func TestVerifyAndParseWebhookFailedEvent(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	cfg.Normalize()

	now := time.Now()
	body := []byte(`{
		"id": "evt_2",
		"type": "payment_intent.payment_failed",
		"data": {"object": {"id": "pi_456", "amount": 1600, "currency": "gbp", "status": "requires_payment_method"}}
	}`)

	result, err := VerifyAndParseWebhook(cfg, signedWebhookHeaders(cfg.WebhookSecret, body, now), body, now)
	if err != nil {
		t.Fatalf("verify webhook failed: %v", err)
	}
	// 事件类型优先于对象状态
	if result.Status != "failed" {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Amount != "16.00" {
		t.Fatalf("unexpected amount: %s", result.Amount)
	}
}

func TestVerifyAndParseWebhookRejectsBadSignature(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	cfg.Normalize()

	now := time.Now()
	body := []byte(`{"id":"evt_3","type":"payment_intent.succeeded","data":{"object":{"id":"pi_789"}}}`)

	headers := map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", now.Unix(), computeSignature("wrong_secret", now.Unix(), body)),
	}
	if _, err := VerifyAndParseWebhook(cfg, headers, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got: %v", err)
	}

	// 缺少签名头
	if _, err := VerifyAndParseWebhook(cfg, nil, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid without header, got: %v", err)
	}

	// 篡改请求体
	headers = signedWebhookHeaders(cfg.WebhookSecret, body, now)
	tampered := []byte(`{"id":"evt_3","type":"payment_intent.succeeded","data":{"object":{"id":"pi_other"}}}`)
	if _, err := VerifyAndParseWebhook(cfg, headers, tampered, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for tampered body, got: %v", err)
	}
}

func TestVerifyAndParseWebhookRejectsStaleTimestamp(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test", WebhookToleranceSeconds: 300}
	cfg.Normalize()

	now := time.Now()
	body := []byte(`{"id":"evt_4","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)

	stale := now.Add(-10 * time.Minute)
	if _, err := VerifyAndParseWebhook(cfg, signedWebhookHeaders(cfg.WebhookSecret, body, stale), body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for stale timestamp, got: %v", err)
	}

	// 容差内放行
	recent := now.Add(-2 * time.Minute)
	if _, err := VerifyAndParseWebhook(cfg, signedWebhookHeaders(cfg.WebhookSecret, body, recent), body, now); err != nil {
		t.Fatalf("expected recent timestamp accepted, got: %v", err)
	}
}

func TestVerifyAndParseWebhookRejectsUnsupportedEventType(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	cfg.Normalize()

	now := time.Now()

	// 签名正确但事件类型不在处理范围内
	body := []byte(`{"id":"evt_5","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`)
	if _, err := VerifyAndParseWebhook(cfg, signedWebhookHeaders(cfg.WebhookSecret, body, now), body, now); !errors.Is(err, ErrEventUnsupported) {
		t.Fatalf("expected ErrEventUnsupported, got: %v", err)
	}

	// 未显式映射的 payment_intent 事件回落到对象状态
	body = []byte(`{"id":"evt_6","type":"payment_intent.created","data":{"object":{"id":"pi_1","status":"requires_payment_method"}}}`)
	result, err := VerifyAndParseWebhook(cfg, signedWebhookHeaders(cfg.WebhookSecret, body, now), body, now)
	if err != nil {
		t.Fatalf("payment_intent event should parse, got: %v", err)
	}
	if result.Status != "pending" {
		t.Fatalf("unexpected status: %s", result.Status)
	}
}

func TestParseSignatureHeader(t *testing.T) {
	ts, sigs, err := parseSignatureHeader("t=1756700000,v1=abc123,v1=def456,v0=ignored")
	if err != nil {
		t.Fatalf("parse header failed: %v", err)
	}
	if ts != 1756700000 {
		t.Fatalf("unexpected timestamp: %d", ts)
	}
	if len(sigs) != 2 || sigs[0] != "abc123" || sigs[1] != "def456" {
		t.Fatalf("unexpected signatures: %v", sigs)
	}

	if _, _, err := parseSignatureHeader("v1=abc123"); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected error without timestamp, got: %v", err)
	}
	if _, _, err := parseSignatureHeader("t=1756700000"); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected error without v1 signature, got: %v", err)
	}
}

func TestMapPaymentIntentStatus(t *testing.T) {
	cases := map[string]string{
		"succeeded":               "success",
		"canceled":                "failed",
		"processing":              "pending",
		"requires_payment_method": "pending",
		"requires_action":         "pending",
		"":                        "pending",
		"something_else":          "pending",
	}
	for input, want := range cases {
		if got := mapPaymentIntentStatus(input); got != want {
			t.Fatalf("mapPaymentIntentStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMinorAmountConversion(t *testing.T) {
	minor, err := toMinorAmount("36.50", "GBP")
	if err != nil {
		t.Fatalf("toMinorAmount failed: %v", err)
	}
	if minor != 3650 {
		t.Fatalf("expected 3650, got %d", minor)
	}

	// 零小数货币不缩放
	minor, err = toMinorAmount("500", "JPY")
	if err != nil {
		t.Fatalf("toMinorAmount failed: %v", err)
	}
	if minor != 500 {
		t.Fatalf("expected 500, got %d", minor)
	}

	if _, err := toMinorAmount("0", "GBP"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected error for zero amount, got: %v", err)
	}
	if _, err := toMinorAmount("abc", "GBP"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected error for invalid amount, got: %v", err)
	}

	if got := fromMinorAmount(3650, "gbp"); got != "36.50" {
		t.Fatalf("fromMinorAmount = %q, want 36.50", got)
	}
	if got := fromMinorAmount(500, "JPY"); got != "500" {
		t.Fatalf("fromMinorAmount = %q, want 500", got)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for nil config, got: %v", err)
	}
	if err := ValidateConfig(&Config{WebhookSecret: "whsec"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid without secret key, got: %v", err)
	}

	cfg := &Config{SecretKey: "sk_test", WebhookSecret: "whsec"}
	cfg.Normalize()
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected normalized config valid, got: %v", err)
	}
	if cfg.APIBaseURL != "https://api.stripe.com" {
		t.Fatalf("unexpected default base url: %s", cfg.APIBaseURL)
	}
	if cfg.WebhookToleranceSeconds != 300 {
		t.Fatalf("unexpected default tolerance: %d", cfg.WebhookToleranceSeconds)
	}
}
