package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/honeyfoods-shop/internal/cache"
	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	storeSettingsCacheKey = "settings:store_config"
	storeSettingsCacheTTL = 10 * time.Minute
)

// StoreSettings 店铺运行参数（从 settings 表合并默认值得到）
type StoreSettings struct {
	DeliveryFee           models.Money `json:"delivery_fee"`
	FreeDeliveryThreshold models.Money `json:"free_delivery_threshold"`
	FreeDeliveryMessage   string       `json:"free_delivery_message"`
	MinOrderAmount        models.Money `json:"min_order_amount"`
	Currency              string       `json:"currency"`
	StoreName             string       `json:"store_name"`
	StoreEmail            string       `json:"store_email"`
	StorePhone            string       `json:"store_phone"`
	StoreAddress          string       `json:"store_address"`
}

// defaultStoreSettings 兜底默认值，settings 表缺键时按字段补齐
func defaultStoreSettings() StoreSettings {
	return StoreSettings{
		DeliveryFee:           models.NewMoneyFromDecimal(decimal.NewFromFloat(4.50)),
		FreeDeliveryThreshold: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		FreeDeliveryMessage:   "Free delivery on orders over {amount}!",
		MinOrderAmount:        models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		Currency:              constants.SiteCurrencyDefault,
		StoreName:             "Honey Foods",
		StoreEmail:            "",
		StorePhone:            "",
		StoreAddress:          "",
	}
}

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetStoreSettings 获取店铺设置（缓存优先，缺键合并默认值）
func (s *SettingService) GetStoreSettings(ctx context.Context) (*StoreSettings, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var cached StoreSettings
	hit, err := cache.GetJSON(ctx, storeSettingsCacheKey, &cached)
	if err != nil {
		logger.Warnw("store_settings_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return nil, err
	}

	settings := defaultStoreSettings()
	if setting != nil {
		applyStoreSettingValues(&settings, setting.ValueJSON)
	}

	if err := cache.SetJSON(ctx, storeSettingsCacheKey, settings, storeSettingsCacheTTL); err != nil {
		logger.Warnw("store_settings_cache_write_failed", "error", err)
	}
	return &settings, nil
}

// UpdateStoreSettings 更新店铺设置并失效缓存
func (s *SettingService) UpdateStoreSettings(ctx context.Context, value map[string]interface{}) (*StoreSettings, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	normalized := normalizeStoreSettingValue(value)

	if _, err := s.repo.Upsert(constants.SettingKeyStoreConfig, normalized); err != nil {
		return nil, err
	}

	if err := cache.Del(ctx, storeSettingsCacheKey); err != nil {
		logger.Warnw("store_settings_cache_invalidate_failed", "error", err)
	}

	return s.GetStoreSettings(ctx)
}

// DeliveryFeeFor 根据小计与配送方式计算配送费。
// 自提永远免配送费；小计达到免配送门槛时配送费为 0。
func (st *StoreSettings) DeliveryFeeFor(method string, subtotal models.Money) models.Money {
	if strings.EqualFold(strings.TrimSpace(method), constants.DeliveryMethodPickup) {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	if subtotal.Decimal.GreaterThanOrEqual(st.FreeDeliveryThreshold.Decimal) {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	return st.DeliveryFee
}

// RenderFreeDeliveryMessage 渲染免配送提示语，{amount} 替换为门槛金额
func (st *StoreSettings) RenderFreeDeliveryMessage() string {
	amount := fmt.Sprintf("%s%s", currencySymbol(st.Currency), st.FreeDeliveryThreshold.String())
	return strings.ReplaceAll(st.FreeDeliveryMessage, "{amount}", amount)
}

func currencySymbol(currency string) string {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "GBP":
		return "£"
	case "EUR":
		return "€"
	case "USD":
		return "$"
	default:
		return ""
	}
}

// applyStoreSettingValues 将存储的键值覆盖到默认设置上
func applyStoreSettingValues(settings *StoreSettings, value models.JSON) {
	if settings == nil || len(value) == 0 {
		return
	}
	if v, ok := value[constants.SettingFieldDeliveryFee]; ok {
		if d, err := parseSettingDecimal(v); err == nil {
			settings.DeliveryFee = models.NewMoneyFromDecimal(d)
		}
	}
	if v, ok := value[constants.SettingFieldFreeDeliveryThreshold]; ok {
		if d, err := parseSettingDecimal(v); err == nil {
			settings.FreeDeliveryThreshold = models.NewMoneyFromDecimal(d)
		}
	}
	if v, ok := value[constants.SettingFieldMinOrderAmount]; ok {
		if d, err := parseSettingDecimal(v); err == nil {
			settings.MinOrderAmount = models.NewMoneyFromDecimal(d)
		}
	}
	if v, ok := value[constants.SettingFieldFreeDeliveryMessage]; ok {
		if msg := parseSettingString(v); msg != "" {
			settings.FreeDeliveryMessage = msg
		}
	}
	if v, ok := value[constants.SettingFieldCurrency]; ok {
		if currency := strings.ToUpper(parseSettingString(v)); currency != "" {
			settings.Currency = currency
		}
	}
	if v, ok := value[constants.SettingFieldStoreName]; ok {
		if name := parseSettingString(v); name != "" {
			settings.StoreName = name
		}
	}
	if v, ok := value[constants.SettingFieldStoreEmail]; ok {
		settings.StoreEmail = parseSettingString(v)
	}
	if v, ok := value[constants.SettingFieldStorePhone]; ok {
		settings.StorePhone = parseSettingString(v)
	}
	if v, ok := value[constants.SettingFieldStoreAddress]; ok {
		settings.StoreAddress = parseSettingString(v)
	}
}

// normalizeStoreSettingValue 过滤未知键并归一化可解析的值
func normalizeStoreSettingValue(value map[string]interface{}) models.JSON {
	normalized := make(models.JSON)
	if len(value) == 0 {
		return normalized
	}
	moneyFields := []string{
		constants.SettingFieldDeliveryFee,
		constants.SettingFieldFreeDeliveryThreshold,
		constants.SettingFieldMinOrderAmount,
	}
	for _, field := range moneyFields {
		if v, ok := value[field]; ok {
			if d, err := parseSettingDecimal(v); err == nil && !d.IsNegative() {
				normalized[field] = d.Round(2).StringFixed(2)
			}
		}
	}
	stringFields := []string{
		constants.SettingFieldFreeDeliveryMessage,
		constants.SettingFieldCurrency,
		constants.SettingFieldStoreName,
		constants.SettingFieldStoreEmail,
		constants.SettingFieldStorePhone,
		constants.SettingFieldStoreAddress,
	}
	for _, field := range stringFields {
		if v, ok := value[field]; ok {
			normalized[field] = parseSettingString(v)
		}
	}
	return normalized
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	case models.Money:
		return v.Decimal, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}

func parseSettingString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
