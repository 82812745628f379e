package service

import (
	"errors"
	"testing"

	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/repository"

	"github.com/shopspring/decimal"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Medovik Honey Cake", "medovik-honey-cake"},
		{"  Pistachio Baklava Box  ", "pistachio-baklava-box"},
		{"Honey & Oat Cookies!", "honey-oat-cookies"},
		{"Café Spécial", "caf-sp-cial"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestProductCreateDerivesSlugAndRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))

	product := &models.Product{
		Name:        "Medovik Honey Cake",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(28.50)),
		IsAvailable: true,
	}
	if err := svc.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Slug != "medovik-honey-cake" {
		t.Fatalf("unexpected derived slug: %s", product.Slug)
	}

	duplicate := &models.Product{
		Name:        "Medovik Honey Cake",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(30)),
	}
	if err := svc.Create(duplicate); !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got: %v", err)
	}
}

func TestProductListPublicOnlyAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))

	seedProduct(t, db, models.Product{
		Name:        "Honeycomb Jar",
		Slug:        "honeycomb-jar",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.50)),
		Category:    "honey",
		IsAvailable: true,
	})
	seedProduct(t, db, models.Product{
		Name:        "Seasonal Honey Gift Set",
		Slug:        "seasonal-honey-gift-set",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.50)),
		Category:    "honey",
		IsAvailable: false,
	})

	products, total, err := svc.ListPublic("", "", false, 1, 20)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("expected only available products, got total=%d len=%d", total, len(products))
	}
	if products[0].Slug != "honeycomb-jar" {
		t.Fatalf("unexpected product: %s", products[0].Slug)
	}

	// 后台列表包含下架商品
	adminProducts, adminTotal, err := svc.ListAdmin("", "", 1, 20)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if adminTotal != 2 || len(adminProducts) != 2 {
		t.Fatalf("expected all products for admin, got total=%d len=%d", adminTotal, len(adminProducts))
	}
}

func TestProductGetPublicBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))

	seedProduct(t, db, models.Product{
		Name:        "Honey Oat Cookies",
		Slug:        "honey-oat-cookies",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(6.80)),
		IsAvailable: true,
	})
	seedProduct(t, db, models.Product{
		Name:        "Seasonal Honey Gift Set",
		Slug:        "seasonal-honey-gift-set",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.50)),
		IsAvailable: false,
	})

	product, err := svc.GetPublicBySlug("honey-oat-cookies")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product.Name != "Honey Oat Cookies" {
		t.Fatalf("unexpected product: %s", product.Name)
	}

	// 下架商品对前台不可见
	if _, err := svc.GetPublicBySlug("seasonal-honey-gift-set"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unavailable product, got: %v", err)
	}
	if _, err := svc.GetPublicBySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
