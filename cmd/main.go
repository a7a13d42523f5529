package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront-service/internal/handler"
	mid "storefront-service/internal/middleware"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/pkg/config"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

func main() {
	// Load .env file if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront-service", appConfig.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Connect to the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), appConfig.Mongo.ConnectTimeout)
	defer cancel()
	db, err := store.NewMongo(connectCtx, appConfig.Mongo.URI, appConfig.Mongo.Database)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	log.Info("Document store connection established",
		zap.String("database", appConfig.Mongo.Database))

	// Ensure the upload directory exists
	if err := os.MkdirAll(appConfig.Upload.Dir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory",
			zap.String("dir", appConfig.Upload.Dir),
			zap.Error(err))
	}

	// Construct services
	products := service.NewProductService(db)
	orders := service.NewOrderService(db)
	gallery := service.NewGalleryService(db, appConfig.Upload.Dir, appConfig.Upload.PublicPath)
	stats := service.NewStatsService(db)
	seed := service.NewSeedService(db)

	// Construct handlers
	productHandler := handler.NewProductHandler(products)
	orderHandler := handler.NewOrderHandler(orders)
	galleryHandler := handler.NewGalleryHandler(gallery)
	adminHandler := handler.NewAdminHandler(stats, seed)

	// Admin guard for mutating endpoints
	adminAuth := mid.AdminAuth(appConfig.Admin.Token)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded gallery files, served read-only
	e.Static(appConfig.Upload.PublicPath, appConfig.Upload.Dir)

	api := e.Group("/api")

	// Product routes: browsing and favorite-toggle are public,
	// catalog curation needs the admin credential
	api.GET("/products", productHandler.List)
	api.GET("/products/category/:category", productHandler.ListByCategory)
	api.GET("/products/:id", productHandler.Get)
	api.PUT("/products/:id/favorite", productHandler.ToggleFavorite)
	api.POST("/products", productHandler.Create, adminAuth)
	api.PUT("/products/:id", productHandler.Update, adminAuth)
	api.DELETE("/products/:id", productHandler.Delete, adminAuth)

	// Order routes: checkout and reads are public, fulfillment is admin
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/status/:status", orderHandler.ListByStatus)
	api.GET("/orders/:id", orderHandler.Get)
	api.PUT("/orders/:id/status", orderHandler.UpdateStatus, adminAuth)

	// Gallery routes
	api.GET("/gallery", galleryHandler.List)
	api.POST("/gallery/upload", galleryHandler.Upload, adminAuth)
	api.DELETE("/gallery/:id", galleryHandler.Delete, adminAuth)

	// Admin routes
	api.GET("/admin/stats", adminHandler.Stats, adminAuth)
	api.POST("/initialize-data", adminHandler.InitializeData)

	// Start server
	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal, then drain requests and release the store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Error("Document store disconnect failed", zap.Error(err))
	}
	log.Info("Shutdown complete")
}
