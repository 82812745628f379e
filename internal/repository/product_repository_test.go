package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/honeyfoods-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T, dst ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(dst...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func createProduct(t *testing.T, repo *GormProductRepository, product models.Product) *models.Product {
	t.Helper()
	if err := repo.Create(&product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestProductListFilters(t *testing.T) {
	db := setupRepositoryTest(t, &models.Product{})
	repo := NewProductRepository(db)

	createProduct(t, repo, models.Product{
		Name:        "Medovik Honey Cake",
		Slug:        "medovik-honey-cake",
		Description: "Layered honey cake",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(28.50)),
		Category:    "cakes",
		IsAvailable: true,
		IsFeatured:  true,
		SortOrder:   300,
	})
	createProduct(t, repo, models.Product{
		Name:        "Honeycomb Jar",
		Slug:        "honeycomb-jar",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.50)),
		Category:    "honey",
		IsAvailable: true,
		SortOrder:   260,
	})
	createProduct(t, repo, models.Product{
		Name:        "Seasonal Honey Gift Set",
		Slug:        "seasonal-honey-gift-set",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.50)),
		Category:    "honey",
		IsAvailable: false,
		SortOrder:   200,
	})

	products, total, err := repo.List(ProductListFilter{OnlyAvailable: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("available filter want 2, got total=%d len=%d", total, len(products))
	}
	// 按 sort_order 降序
	if products[0].Slug != "medovik-honey-cake" {
		t.Fatalf("unexpected order, first=%s", products[0].Slug)
	}

	products, total, err = repo.List(ProductListFilter{OnlyAvailable: true, OnlyFeatured: true})
	if err != nil {
		t.Fatalf("list featured failed: %v", err)
	}
	if total != 1 || products[0].Slug != "medovik-honey-cake" {
		t.Fatalf("featured filter want medovik, got total=%d", total)
	}

	products, total, err = repo.List(ProductListFilter{Category: "honey"})
	if err != nil {
		t.Fatalf("list category failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("category filter want 2, got %d", total)
	}

	products, total, err = repo.List(ProductListFilter{Search: "honeycomb"})
	if err != nil {
		t.Fatalf("list search failed: %v", err)
	}
	if total != 1 || products[0].Slug != "honeycomb-jar" {
		t.Fatalf("search filter want honeycomb-jar, got total=%d", total)
	}

	products, total, err = repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list paged failed: %v", err)
	}
	if total != 3 || len(products) != 1 {
		t.Fatalf("pagination want total=3 len=1, got total=%d len=%d", total, len(products))
	}
}

func TestProductGetBySlugVisibility(t *testing.T) {
	db := setupRepositoryTest(t, &models.Product{})
	repo := NewProductRepository(db)

	createProduct(t, repo, models.Product{
		Name:        "Seasonal Honey Gift Set",
		Slug:        "seasonal-honey-gift-set",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.50)),
		IsAvailable: false,
	})

	product, err := repo.GetBySlug("seasonal-honey-gift-set", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product != nil {
		t.Fatalf("unavailable product should be hidden from public lookup")
	}

	product, err = repo.GetBySlug("seasonal-honey-gift-set", false)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product == nil {
		t.Fatalf("admin lookup should include unavailable product")
	}
}

func TestProductListCategories(t *testing.T) {
	db := setupRepositoryTest(t, &models.Product{})
	repo := NewProductRepository(db)

	createProduct(t, repo, models.Product{Name: "A", Slug: "a", Category: "cakes", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1))})
	createProduct(t, repo, models.Product{Name: "B", Slug: "b", Category: "honey", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1))})
	createProduct(t, repo, models.Product{Name: "C", Slug: "c", Category: "honey", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1))})
	createProduct(t, repo, models.Product{Name: "D", Slug: "d", Category: "", PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1))})

	categories, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "cakes" || categories[1] != "honey" {
		t.Fatalf("unexpected categories: %v", categories)
	}
}

func TestProductCountBySlug(t *testing.T) {
	db := setupRepositoryTest(t, &models.Product{})
	repo := NewProductRepository(db)

	product := createProduct(t, repo, models.Product{
		Name:        "Honeycomb Jar",
		Slug:        "honeycomb-jar",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.50)),
	})

	count, err := repo.CountBySlug("honeycomb-jar", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("honeycomb-jar", &product.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclude want 0 got %d", count)
	}
}
