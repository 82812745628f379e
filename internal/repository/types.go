package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Search        string
	OnlyAvailable bool
	OnlyFeatured  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page           int
	PageSize       int
	Status         string
	PaymentStatus  string
	DeliveryMethod string
	OrderNo        string
	CustomerEmail  string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// PaymentListFilter 查询支付列表的过滤条件
type PaymentListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	Provider    string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// GalleryListFilter 查询展示图列表的过滤条件
type GalleryListFilter struct {
	Page        int
	PageSize    int
	Category    string
	OnlyVisible bool
}
