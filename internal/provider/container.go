package provider

import (
	"github.com/honeyfoods-shop/internal/authz"
	"github.com/honeyfoods-shop/internal/cache"
	"github.com/honeyfoods-shop/internal/config"
	"github.com/honeyfoods-shop/internal/logger"
	"github.com/honeyfoods-shop/internal/models"
	"github.com/honeyfoods-shop/internal/queue"
	"github.com/honeyfoods-shop/internal/repository"
	"github.com/honeyfoods-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo   repository.AdminRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	PaymentRepo repository.PaymentRepository
	GalleryRepo repository.GalleryRepository
	SettingRepo repository.SettingRepository

	// Services
	AuthzService   *authz.Service
	AuthService    *service.AuthService
	EmailService   *service.EmailService
	UploadService  *service.UploadService
	ProductService *service.ProductService
	GalleryService *service.GalleryService
	SettingService *service.SettingService
	CartService    *service.CartService
	OrderService   *service.OrderService
	PaymentService *service.PaymentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.GalleryRepo = repository.NewGalleryRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.GalleryService = service.NewGalleryService(c.GalleryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.SettingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.SettingService, c.QueueClient)
	c.PaymentService = service.NewPaymentService(c.Config, c.PaymentRepo, c.OrderRepo, c.OrderService)
}
