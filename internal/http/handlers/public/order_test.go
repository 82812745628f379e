package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func TestCreateOrderRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 金额为 JSON 数字、邮箱缺省也能完成绑定
	body := `{"customer_name":"Alex Taylor","delivery_method":"delivery","items":[{"product_id":1,"quantity":2}],"subtotal":32,"delivery_fee":4.5,"total":"36.50"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/public/orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.CustomerEmail != "" {
		t.Fatalf("expected empty email, got %q", req.CustomerEmail)
	}
	if req.ClaimedSubtotal == nil || !req.ClaimedSubtotal.Decimal.Equal(decimal.NewFromInt(32)) {
		t.Fatalf("unexpected subtotal: %+v", req.ClaimedSubtotal)
	}
	if req.ClaimedDeliveryFee == nil || req.ClaimedDeliveryFee.String() != "4.50" {
		t.Fatalf("unexpected delivery fee: %+v", req.ClaimedDeliveryFee)
	}
	if req.ClaimedTotal == nil || req.ClaimedTotal.String() != "36.50" {
		t.Fatalf("unexpected total: %+v", req.ClaimedTotal)
	}
}
