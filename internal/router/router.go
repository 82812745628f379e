package router

import (
	"fmt"
	"strings"

	"github.com/honeyfoods-shop/internal/cache"
	"github.com/honeyfoods-shop/internal/config"
	adminhandlers "github.com/honeyfoods-shop/internal/http/handlers/admin"
	publichandlers "github.com/honeyfoods-shop/internal/http/handlers/public"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "hf"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/gallery", publicHandler.GetGallery)

			// 购物车（X-Cart-Token 标识会话）
			public.GET("/cart", publicHandler.GetCart)
			public.POST("/cart", publicHandler.MergeCart)
			public.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			public.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			public.DELETE("/cart", publicHandler.ClearCart)

			// 游客下单与查单
			public.POST("/orders", publicHandler.CreateOrder)
			public.GET("/orders/lookup", publicHandler.LookupOrder)

			// 支付
			public.POST("/payments/intent", publicHandler.CreatePaymentIntent)
			public.GET("/payments/:id/status", publicHandler.GetPaymentStatus)
		}

		apiV1.POST("/payments/webhook/stripe", publicHandler.StripeWebhook)

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 管理员与角色
				authorized.GET("/admins", adminHandler.GetAdmins)
				authorized.POST("/admins", adminHandler.CreateAdmin)
				authorized.DELETE("/admins/:id", adminHandler.DeleteAdmin)
				authorized.PUT("/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/roles", adminHandler.GetRoles)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.POST("/orders/:id/ready", adminHandler.MarkOrderReadyForPickup)

				// 支付记录
				authorized.GET("/payments", adminHandler.GetAdminPayments)

				// 店铺设置
				authorized.GET("/settings/store", adminHandler.GetStoreSettings)
				authorized.PUT("/settings/store", adminHandler.UpdateStoreSettings)

				// 展示图管理
				authorized.GET("/gallery", adminHandler.GetAdminGallery)
				authorized.POST("/gallery", adminHandler.CreateGalleryImage)
				authorized.PUT("/gallery/:id", adminHandler.UpdateGalleryImage)
				authorized.DELETE("/gallery/:id", adminHandler.DeleteGalleryImage)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// SMTP 测试
				authorized.POST("/smtp/test", adminHandler.SendTestEmail)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
