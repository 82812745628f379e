package main

import (
	"fmt"

	"github.com/honeyfoods-shop/internal/config"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			Name:        "Medovik Honey Cake",
			Slug:        "medovik-honey-cake",
			Description: "Traditional layered honey cake with sour cream filling, baked to order.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(28.50)),
			Category:    "cakes",
			Image:       "https://images.unsplash.com/photo-1542826438-bd32f43d626f?w=800",
			Flavors:     models.StringArray([]string{"Classic", "Walnut", "Chocolate"}),
			IsAvailable: true,
			IsFeatured:  true,
			SortOrder:   300,
		},
		{
			Name:        "Pistachio Baklava Box",
			Slug:        "pistachio-baklava-box",
			Description: "Twelve pieces of crisp filo baklava soaked in honey syrup, topped with pistachio.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(16.00)),
			Category:    "baklava",
			Image:       "https://images.unsplash.com/photo-1519676867240-f03562e64548?w=800",
			Flavors:     models.StringArray([]string{"Pistachio", "Walnut", "Mixed"}),
			IsAvailable: true,
			IsFeatured:  true,
			SortOrder:   280,
		},
		{
			Name:        "Honeycomb Jar",
			Slug:        "honeycomb-jar",
			Description: "Raw cut honeycomb in wildflower honey, 340g jar.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.50)),
			Category:    "honey",
			Image:       "https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=800",
			IsAvailable: true,
			SortOrder:   260,
		},
		{
			Name:        "Honey Oat Cookies",
			Slug:        "honey-oat-cookies",
			Description: "Chewy oat cookies sweetened with honey, pack of eight.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(6.80)),
			Category:    "bakes",
			Image:       "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=800",
			Flavors:     models.StringArray([]string{"Plain", "Raisin", "Dark Chocolate"}),
			IsAvailable: true,
			SortOrder:   240,
		},
		{
			Name:        "Medovik Slice Box",
			Slug:        "medovik-slice-box",
			Description: "Four individual honey cake slices, perfect for trying before ordering a whole cake.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.00)),
			Category:    "cakes",
			Image:       "https://images.unsplash.com/photo-1464195244916-405fa0a82545?w=800",
			IsAvailable: true,
			SortOrder:   220,
		},
		{
			Name:        "Seasonal Honey Gift Set",
			Slug:        "seasonal-honey-gift-set",
			Description: "Three small jars of seasonal honey with a wooden dipper, gift wrapped.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.50)),
			Category:    "honey",
			Image:       "https://images.unsplash.com/photo-1558642452-9d2a7deb7f62?w=800",
			IsAvailable: false,
			SortOrder:   200,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.PriceAmount = prod.PriceAmount
			existing.Category = prod.Category
			existing.Image = prod.Image
			existing.AdditionalImages = prod.AdditionalImages
			existing.Flavors = prod.Flavors
			existing.IsAvailable = prod.IsAvailable
			existing.IsFeatured = prod.IsFeatured
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Slug)
			}
		}
	}

	// 添加展示图
	galleryImages := []models.GalleryImage{
		{
			Title:     "Wedding honey cake, three tiers",
			Image:     "https://images.unsplash.com/photo-1535254973040-607b474cb50d?w=1200",
			Category:  "cakes",
			SortOrder: 300,
			IsVisible: true,
		},
		{
			Title:     "Fresh baklava tray",
			Image:     "https://images.unsplash.com/photo-1579372786545-d24232daf58c?w=1200",
			Category:  "baklava",
			SortOrder: 280,
			IsVisible: true,
		},
		{
			Title:     "Honey harvest",
			Image:     "https://images.unsplash.com/photo-1471943311424-646960669fbc?w=1200",
			Category:  "honey",
			SortOrder: 260,
			IsVisible: true,
		},
	}

	for _, image := range galleryImages {
		var existing models.GalleryImage
		if err := models.DB.Where("image = ?", image.Image).First(&existing).Error; err != nil {
			if err := models.DB.Create(&image).Error; err != nil {
				stdLog.Printf("Failed to create gallery image %q: %v", image.Title, err)
			} else {
				stdLog.Printf("Created gallery image: %s", image.Title)
			}
		} else {
			stdLog.Printf("Gallery image already exists: %s", image.Title)
		}
	}

	// 初始化店铺设置
	storeConfig := map[string]interface{}{
		"store_name":              "Honey Foods",
		"store_email":             "hello@honeyfoods.example",
		"store_phone":             "+44 20 7946 0018",
		"store_address":           "12 Orchard Lane, London N8 9QT",
		"currency":                "GBP",
		"delivery_fee":            4.50,
		"free_delivery_threshold": 50,
		"free_delivery_message":   "Free delivery on orders over {amount}!",
		"min_order_amount":        15,
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", "store_config").First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       "store_config",
			ValueJSON: models.JSON(storeConfig),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create store config: %v", err)
		} else {
			stdLog.Println("Created store config")
		}
	} else {
		stdLog.Println("Store config already exists, left unchanged")
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 6 Products (cakes, baklava, honey, bakes)")
	fmt.Println("- 3 Gallery images")
	fmt.Println("- Store configuration")
}
