package constants

// 订单履约状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusReadyForPickup = "ready_for_pickup"
	OrderStatusDelivered      = "delivered"
	OrderStatusPickedUp       = "picked_up"
	OrderStatusCancelled      = "cancelled"
)

// 订单支付状态常量
const (
	OrderPaymentStatusPending  = "pending"
	OrderPaymentStatusPaid     = "paid"
	OrderPaymentStatusFailed   = "failed"
	OrderPaymentStatusRefunded = "refunded"
)

// 配送方式常量
const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

// 支付记录状态常量
const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// 支付提供方常量
const (
	PaymentProviderStripe = "stripe"
)

// 设置键常量
const (
	SettingKeyStoreConfig = "store_config"
)

// 店铺设置字段常量
const (
	SettingFieldDeliveryFee           = "delivery_fee"
	SettingFieldFreeDeliveryThreshold = "free_delivery_threshold"
	SettingFieldFreeDeliveryMessage   = "free_delivery_message"
	SettingFieldMinOrderAmount        = "min_order_amount"
	SettingFieldCurrency              = "currency"
	SettingFieldStoreName             = "store_name"
	SettingFieldStoreEmail            = "store_email"
	SettingFieldStorePhone            = "store_phone"
	SettingFieldStoreAddress          = "store_address"
)

// 店铺货币默认值
const SiteCurrencyDefault = "GBP"

// 队列名称常量
const (
	QueueDefault = "default"
)

// 队列任务类型常量
const (
	TaskOrderStatusEmail = "order:status_email"
	TaskPickupReadyEmail = "order:pickup_ready_email"
)
