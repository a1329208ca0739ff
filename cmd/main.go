package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/config"
	"github.com/zija9452/dashboard-frontend-sub001/internal/backend"
	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
	"github.com/zija9452/dashboard-frontend-sub001/internal/handlers"
	"github.com/zija9452/dashboard-frontend-sub001/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting POS dashboard gateway...")
	logger.Infof("Backend target: %s", cfg.BackendBaseURL)

	fwd := forwarder.New(cfg.BackendBaseURL, cfg.DefaultTimeout(), logger)
	backendClient := backend.NewClient(cfg.BackendBaseURL, cfg.SessionCookieName, cfg.DefaultTimeout(), logger)
	routes := handlers.NewRoutes(cfg.ReportTimeout())

	authHandler := handlers.NewAuthHandler(backendClient, cfg.SessionCookieName, cfg.IsProduction(), logger)
	productHandler := handlers.NewProductHandler(routes, fwd, backendClient, logger)
	stockHandler := handlers.NewStockHandler(routes, fwd, logger)
	invoiceHandler := handlers.NewInvoiceHandler(routes, fwd, logger)
	refundHandler := handlers.NewRefundHandler(logger)

	brandHandler := handlers.NewResourceHandler("Brand", routes.Brand, fwd, logger)
	categoryHandler := handlers.NewResourceHandler("Category", routes.Category, fwd, logger)
	customerHandler := handlers.NewResourceHandler("Customer", routes.Customers, fwd, logger)
	vendorHandler := handlers.NewResourceHandler("Vendor", routes.Vendors, fwd, logger).
		WithViewRoute(routes.VendorsView)
	expenseHandler := handlers.NewResourceHandler("Expense", routes.Expenses, fwd, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	guarded := api.Group("")
	guarded.Use(middleware.SessionGuard(cfg.SessionCookieName, logger))
	{
		brandHandler.Register(guarded.Group("/brand"))
		categoryHandler.Register(guarded.Group("/category"))
		customerHandler.Register(guarded.Group("/customers"))
		vendorHandler.Register(guarded.Group("/vendors"))
		expenseHandler.Register(guarded.Group("/expenses"))

		products := guarded.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.GET("/barcode", productHandler.LookupBarcode)
		}

		stock := guarded.Group("/stock")
		{
			stock.GET("", stockHandler.View)
			stock.POST("/adjust", stockHandler.Adjust)
			stock.POST("/report", stockHandler.Report)
			stock.POST("/labels", stockHandler.Labels)
		}

		invoices := guarded.Group("/invoices")
		{
			invoices.GET("/walkin", invoiceHandler.WalkinList)
			invoices.POST("/walkin", invoiceHandler.WalkinCreate)
			invoices.GET("/walkin/:id", invoiceHandler.WalkinGet)
			invoices.DELETE("/walkin/:id", invoiceHandler.WalkinDelete)

			invoices.GET("/customer", invoiceHandler.CustomerList)
			invoices.POST("/customer", invoiceHandler.CustomerCreate)
			invoices.GET("/customer/:id", invoiceHandler.CustomerGet)
			invoices.PUT("/customer/:id", invoiceHandler.CustomerUpdate)
			invoices.DELETE("/customer/:id", invoiceHandler.CustomerDelete)
		}

		guarded.GET("/refunds", refundHandler.List)
	}

	logger.Infof("Gateway listening on %s", cfg.GatewayPort)
	if err := router.Run(cfg.GatewayPort); err != nil {
		logger.Errorf("Failed to start gateway: %v", err)
		os.Exit(1)
	}
}
