package router

import (
	"github.com/petmart-next/internal/config"
	adminhandlers "github.com/petmart-next/internal/http/handlers/admin"
	publichandlers "github.com/petmart-next/internal/http/handlers/public"
	"github.com/petmart-next/internal/logger"
	"github.com/petmart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 商品图片等上传文件
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/products/:slug/related", publicHandler.ListRelatedProducts)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:slug", publicHandler.GetCategory)
			public.GET("/banners", publicHandler.ListBanners)
			public.GET("/ratings/:product_id", publicHandler.ListProductRatings)
			public.GET("/ratings/:product_id/summary", publicHandler.GetProductRatingSummary)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// 购物车接口：游客凭会话头访问，登录用户凭 token 访问
		cartGroup := apiV1.Group("/cart")
		cartGroup.Use(OptionalUserAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			cartGroup.POST("/session", publicHandler.NewCartSession)
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PUT("/items/:product_id", publicHandler.SetCartQuantity)
			cartGroup.DELETE("/items/:product_id", publicHandler.RemoveCartItem)
			cartGroup.DELETE("", publicHandler.ClearCart)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.POST("/ratings", publicHandler.RateProduct)
			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:order_no", publicHandler.GetOrder)
			user.POST("/orders/:order_no/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			authorized := admin.Use(
				JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
				AdminRBACMiddleware(c.AuthzService),
			)
			{
				authorized.PUT("/password", adminHandler.ChangePassword)

				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.GET("/categories/:id", adminHandler.GetCategory)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/banners", adminHandler.ListBanners)
				authorized.GET("/banners/:id", adminHandler.GetBanner)
				authorized.POST("/banners", adminHandler.CreateBanner)
				authorized.PUT("/banners/:id", adminHandler.UpdateBanner)
				authorized.DELETE("/banners/:id", adminHandler.DeleteBanner)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:order_no", adminHandler.GetOrder)
				authorized.PATCH("/orders/:order_no/status", adminHandler.UpdateOrderStatus)

				authorized.GET("/users", adminHandler.ListUsers)
				authorized.GET("/users/:id", adminHandler.GetUser)
				authorized.PATCH("/users/:id/status", adminHandler.SetUserStatus)

				authorized.GET("/ratings", adminHandler.ListRatings)
				authorized.DELETE("/ratings/:id", adminHandler.DeleteRating)

				authorized.GET("/authz/roles", adminHandler.ListRoles)
				authorized.POST("/authz/roles", adminHandler.CreateRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
