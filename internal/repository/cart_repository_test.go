package repository

import (
	"testing"

	"github.com/honeyfoods-shop/internal/models"

	"github.com/shopspring/decimal"
)

func TestCartUpsertAndList(t *testing.T) {
	db := setupRepositoryTest(t, &models.Product{}, &models.CartItem{})
	repo := NewCartRepository(db)

	product := models.Product{
		Name:        "Medovik Honey Cake",
		Slug:        "medovik-honey-cake",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(28.50)),
		IsAvailable: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := repo.Upsert(&models.CartItem{CartToken: "tok-1", ProductID: product.ID, Flavor: "Walnut", Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	// 同键再次 upsert 覆盖数量
	if err := repo.Upsert(&models.CartItem{CartToken: "tok-1", ProductID: product.ID, Flavor: "Walnut", Quantity: 4}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	// 不同口味是独立条目
	if err := repo.Upsert(&models.CartItem{CartToken: "tok-1", ProductID: product.ID, Flavor: "Classic", Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	items, err := repo.ListByToken("tok-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items got %d", len(items))
	}
	for _, item := range items {
		if item.Product == nil || item.Product.ID != product.ID {
			t.Fatalf("expected product preloaded: %+v", item)
		}
		if item.Flavor == "Walnut" && item.Quantity != 4 {
			t.Fatalf("upsert should overwrite quantity, got %d", item.Quantity)
		}
	}
}

func TestCartGetDeleteClear(t *testing.T) {
	db := setupRepositoryTest(t, &models.Product{}, &models.CartItem{})
	repo := NewCartRepository(db)

	if err := repo.Upsert(&models.CartItem{CartToken: "tok-2", ProductID: 1, Flavor: "", Quantity: 2}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(&models.CartItem{CartToken: "tok-2", ProductID: 2, Flavor: "", Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(&models.CartItem{CartToken: "tok-other", ProductID: 1, Flavor: "", Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	item, err := repo.GetByTokenProductFlavor("tok-2", 1, "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if item == nil || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}

	// 不存在的条目返回 nil 而非错误
	item, err = repo.GetByTokenProductFlavor("tok-2", 99, "")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if item != nil {
		t.Fatalf("missing item should be nil, got %+v", item)
	}

	if err := repo.DeleteByTokenProductFlavor("tok-2", 1, ""); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	items, err := repo.ListByToken("tok-2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("unexpected items after delete: %+v", items)
	}

	if err := repo.ClearByToken("tok-2"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err = repo.ListByToken("tok-2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %+v", items)
	}

	// 其他购物车不受影响
	otherItems, err := repo.ListByToken("tok-other")
	if err != nil {
		t.Fatalf("list other failed: %v", err)
	}
	if len(otherItems) != 1 {
		t.Fatalf("other cart should be untouched, got %+v", otherItems)
	}
}
