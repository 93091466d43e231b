package routes

import (
	"easy-shop/controllers"
	"easy-shop/middleware"
	"easy-shop/services"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Dependencies struct {
	Auth         *services.AuthService
	Catalog      *services.CatalogService
	Cart         *services.CartService
	Checkout     *services.CheckoutService
	Orders       *services.OrderService
	Admin        *services.AdminService
	Feeds        *services.FeedService
	LoginLimiter *middleware.RateLimiter
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authCtrl := controllers.NewAuthController(deps.Auth)
	productCtrl := controllers.NewProductController(deps.Catalog)
	cartCtrl := controllers.NewCartController(deps.Cart)
	orderCtrl := controllers.NewOrderController(deps.Checkout, deps.Orders)
	adminCtrl := controllers.NewAdminController(deps.Admin)
	feedCtrl := controllers.NewFeedController(deps.Feeds)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	public := router.Group("/auth")
	if deps.LoginLimiter != nil {
		public.Use(deps.LoginLimiter.Handler())
	}
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	router.GET("/feeds/news", feedCtrl.GetNews)
	router.GET("/feeds/rates", feedCtrl.GetRates)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(deps.Auth))
	{
		auth.POST("/auth/logout", authCtrl.Logout)
		auth.GET("/auth/session", authCtrl.Session)

		auth.GET("/products", productCtrl.GetAllProducts)
		auth.GET("/products/:id", productCtrl.GetProduct)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:product_id", cartCtrl.SetQuantity)
		auth.DELETE("/cart/items/:product_id", cartCtrl.RemoveItem)

		auth.POST("/orders", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetHistory)
		auth.GET("/orders/:id", orderCtrl.GetOrder)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Auth), middleware.AdminMiddleware())
	{
		admin.GET("/products", adminCtrl.ListProducts)
		admin.POST("/products", adminCtrl.CreateProduct)
		admin.PATCH("/products/:id", adminCtrl.UpdateProduct)
		admin.DELETE("/products/:id", adminCtrl.DeleteProduct)

		admin.GET("/orders", adminCtrl.ListOrders)
		admin.DELETE("/orders/:id", adminCtrl.DeleteOrder)
	}
}
