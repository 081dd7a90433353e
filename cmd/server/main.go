package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cetakindo/printshop-backend/config"
	"github.com/cetakindo/printshop-backend/internal/app/controller"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/internal/app/service"
	"github.com/cetakindo/printshop-backend/internal/db"
	"github.com/cetakindo/printshop-backend/internal/middleware"
	"github.com/cetakindo/printshop-backend/internal/router"
	"github.com/cetakindo/printshop-backend/internal/scheduler"
	"github.com/cetakindo/printshop-backend/internal/websocket"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/cetakindo/printshop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting CETAKINDO Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize redis; the snapshot cache degrades to database reads when
	// redis is unavailable, so failure is not fatal.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, product snapshot cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	rollRepo := repository.NewRollOptionRepository(db.GetDB())
	designRepo := repository.NewDesignRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Start the order editor event hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	catalogService := service.NewCatalogService(productRepo, rollRepo, designRepo, cfg.Catalog.SnapshotTTL)
	cartService := service.NewCartService(cartRepo, productRepo, designRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, hub)
	reportService := service.NewReportService(orderService)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	adminOrderController := controller.NewAdminOrderController(orderService, reportService, hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the nightly cart cleanup
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo)
	if err := cartCleanup.Start(); err != nil {
		logger.Error("Failed to start cart cleanup scheduler", err)
	}
	defer cartCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		cartController,
		orderController,
		adminOrderController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
