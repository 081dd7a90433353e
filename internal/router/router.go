package router

import (
	"github.com/cetakindo/printshop-backend/config"
	"github.com/cetakindo/printshop-backend/internal/app/controller"
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController       *controller.AuthController
	catalogController    *controller.CatalogController
	cartController       *controller.CartController
	orderController      *controller.OrderController
	adminOrderController *controller.AdminOrderController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	adminOrderController *controller.AdminOrderController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		catalogController:    catalogController,
		cartController:       cartController,
		orderController:      orderController,
		adminOrderController: adminOrderController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "CETAKINDO API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.GetProducts)
			products.GET("/:id", r.catalogController.GetProductByID)
			products.GET("/:id/rolls", r.catalogController.GetProductRolls)
			products.POST("/:id/quote", r.catalogController.QuotePrice)
		}

		v1.GET("/designs", r.catalogController.GetDesigns)

		cart := v1.Group("/cart", r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:id", r.cartController.RemoveFromCart)
		}

		orders := v1.Group("/orders", r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("", r.orderController.CreateOrder)
		}

		admin := v1.Group("/admin",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleStaff, model.RoleAdmin),
		)
		{
			admin.PUT("/products/:id", r.catalogController.UpdateProduct)

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", r.adminOrderController.ListOrders)
				adminOrders.GET("/:id", r.adminOrderController.GetOrder)
				adminOrders.POST("/:id/items", r.adminOrderController.AddItem)
				adminOrders.PUT("/:id/items/:itemId", r.adminOrderController.UpdateItem)
				adminOrders.DELETE("/:id/items/:itemId", r.adminOrderController.RemoveItem)
				adminOrders.POST("/:id/items/:itemId/duplicate", r.adminOrderController.DuplicateItem)
				adminOrders.PUT("/:id/adjustments", r.adminOrderController.SetAdjustments)
				adminOrders.POST("/:id/lock", r.adminOrderController.Lock)
				adminOrders.POST("/:id/unlock", r.adminOrderController.Unlock)
				adminOrders.GET("/:id/lock-events", r.adminOrderController.GetLockEvents)
				adminOrders.GET("/:id/export", r.adminOrderController.Export)
				adminOrders.GET("/:id/events", r.adminOrderController.Events)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
