package service

import (
	"errors"
	"fmt"
	"strings"
)

// 业务层统一错误定义
var (
	ErrNotFound               = errors.New("记录不存在")
	ErrInvalidCredentials     = errors.New("用户名或密码错误")
	ErrInvalidPassword        = errors.New("旧密码错误")
	ErrDuplicateSlug          = errors.New("slug 已存在")
	ErrDuplicateUsername      = errors.New("用户名已存在")
	ErrProductNotFound        = errors.New("商品不存在")
	ErrOrderNotFound          = errors.New("订单不存在")
	ErrOrderEmpty             = errors.New("订单不能为空")
	ErrInvalidOrderItem       = errors.New("订单项参数非法")
	ErrInvalidDeliveryMethod  = errors.New("配送方式非法")
	ErrDeliveryAddressMissing = errors.New("配送地址缺失")
	ErrOrderTotalMismatch     = errors.New("订单金额校验失败")
	ErrOrderBelowMinimum      = errors.New("未达到最低起订金额")
	ErrOrderStatusTransition  = errors.New("订单状态流转非法")
	ErrOrderNotPickup         = errors.New("非自提订单")
	ErrOrderAlreadyPaid       = errors.New("订单已支付")
	ErrPaymentNotFound        = errors.New("支付记录不存在")
	ErrPaymentNotConfigured   = errors.New("支付渠道未配置")
	ErrInvalidCartItem        = errors.New("购物车项参数非法")
	ErrCartTokenMissing       = errors.New("购物车令牌缺失")
	ErrInvalidFlavor          = errors.New("口味不在可选范围")
	ErrGalleryImageNotFound   = errors.New("展示图不存在")

	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrInvalidEmail              = errors.New("邮箱格式非法")

	ErrUploadFileTooLarge    = errors.New("文件超出大小限制")
	ErrUploadTypeNotAllowed  = errors.New("文件类型不允许")
	ErrCannotDeleteSelf      = errors.New("不能删除当前登录账号")
	ErrCannotDeleteLastAdmin = errors.New("不能删除最后一个管理员")
)

// UnknownProductsError 下单时存在未知或已删除的商品
type UnknownProductsError struct {
	IDs []uint
}

// Error 实现 error 接口
func (e *UnknownProductsError) Error() string {
	parts := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return "未知商品: " + strings.Join(parts, ",")
}

// UnavailableProductError 下单时商品已下架
type UnavailableProductError struct {
	Name string
}

// Error 实现 error 接口
func (e *UnavailableProductError) Error() string {
	return "商品已下架: " + e.Name
}
