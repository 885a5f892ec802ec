package provider

import (
	"time"

	"github.com/petmart-next/internal/authz"
	"github.com/petmart-next/internal/cache"
	"github.com/petmart-next/internal/cart"
	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/logger"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/queue"
	"github.com/petmart-next/internal/repository"
	"github.com/petmart-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	BannerRepo   repository.BannerRepository
	RatingRepo   repository.RatingRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository

	// 匿名购物车快照存储
	CartStore cart.Store

	// Services
	AuthzService     *authz.Service
	LoginRateLimiter *service.LoginRateLimiter
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	UserService      *service.UserService
	EmailService     *service.EmailService
	CaptchaService   *service.CaptchaService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	BannerService    *service.BannerService
	RatingService    *service.RatingService
	CartService      *service.CartService
	OrderService     *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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

	c.initRepositories()
	c.initCartStore()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.RatingRepo = repository.NewRatingRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initCartStore() {
	ttl := time.Duration(c.Config.Cart.SessionTTLHours) * time.Hour
	if cache.Enabled() {
		c.CartStore = cart.NewRedisStore(cache.Client(), cache.Prefix(), ttl)
		return
	}
	// Redis 未启用时退化为进程内存储，重启后匿名购物车丢失
	logger.Warnw("cart_store_fallback_memory", "reason", "redis_disabled")
	c.CartStore = cart.NewMemoryStore()
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

	c.LoginRateLimiter = service.NewLoginRateLimiter(c.Config.Security.LoginRateLimit)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.RatingRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.RatingService = service.NewRatingService(c.RatingRepo, c.ProductRepo, c.OrderRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.CartStore, c.Config.Cart)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.CartService, c.QueueClient)
}
