package main

import (
	"context"

	"github.com/gin-gonic/gin"

	billingAPI "github.com/rizalf/pos-billing-backend/internal/billing/api"
	billingRepo "github.com/rizalf/pos-billing-backend/internal/billing/repository"
	billingService "github.com/rizalf/pos-billing-backend/internal/billing/service"
	customerAPI "github.com/rizalf/pos-billing-backend/internal/customer/api"
	customerRepo "github.com/rizalf/pos-billing-backend/internal/customer/repository"
	customerService "github.com/rizalf/pos-billing-backend/internal/customer/service"
	"github.com/rizalf/pos-billing-backend/internal/platform/config"
	"github.com/rizalf/pos-billing-backend/internal/platform/database"
	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
	"github.com/rizalf/pos-billing-backend/internal/platform/middleware"
	productAPI "github.com/rizalf/pos-billing-backend/internal/product/api"
	productRepo "github.com/rizalf/pos-billing-backend/internal/product/repository"
	productService "github.com/rizalf/pos-billing-backend/internal/product/service"
)

func main() {
	// Load Config
	dbCfg := config.LoadBillingDBConfig()
	serverCfg := config.LoadServerConfig("8080")
	jobCfg := config.LoadJobConfig()

	logger.Info("Starting POS Billing Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Billing Service", err)
		return
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("Failed to bootstrap database schema", err)
		return
	}

	// Setup Dependencies
	customerRepository := customerRepo.NewPostgresCustomerRepository(db)
	productRepository := productRepo.NewPostgresProductRepository(db)
	billRepository := billingRepo.NewPostgresBillRepository(db)

	custService := customerService.NewCustomerService(customerRepository)
	prodService := productService.NewProductService(productRepository)
	billService := billingService.NewBillingService(
		billRepository,
		billingService.NewProductCatalog(productRepository),
		billingService.NewCustomerDirectory(customerRepository),
		jobCfg,
	)

	customerHandler := customerAPI.NewCustomerHandler(custService)
	productHandler := productAPI.NewProductHandler(prodService)
	billingHandler := billingAPI.NewBillingHandler(billService)

	// Setup Gin Router
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.StaticFile("/", "./static/index.html")

	apiV1 := router.Group("/api/v1")
	customerHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	billingHandler.RegisterRoutes(apiV1)

	logger.Info("POS Billing Service running on port " + serverCfg.Port)
	if errSrv := router.Run(serverCfg.Port); errSrv != nil {
		logger.Error("Failed to run POS Billing Service server", errSrv)
	}
}
