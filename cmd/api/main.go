package main

import (
	"github.com/gin-gonic/gin"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/config"
	"github.com/mbayedev/partstore-api/internal/infrastructure/database"
	"github.com/mbayedev/partstore-api/internal/infrastructure/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/handler"
	"github.com/mbayedev/partstore-api/internal/presentation/http/routes"
	"github.com/mbayedev/partstore-api/pkg/logger"
	"github.com/mbayedev/partstore-api/pkg/oauth"
	"github.com/mbayedev/partstore-api/pkg/printer"
	"github.com/mbayedev/partstore-api/pkg/storage"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Configure(cfg.App.Env, cfg.Log.Level)
	log := logger.Get()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed roles, permissions and reference sequences
	if err := database.SeedDefaultData(db); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	clientRepo := repository.NewClientRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	taxRepo := repository.NewTaxRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	bankRepo := repository.NewBankRepository(db)
	cashRegisterRepo := repository.NewCashRegisterRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize image storage
	imageStore, err := storage.NewImageStore(cfg.Storage.Path, "/storage", cfg.Storage.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize receipt printer
	device, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warnf("Failed to initialize printer: %v", err)
		device = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager, googleOAuthService)
	articleService := service.NewArticleService(articleRepo, categoryRepo, imageStore)
	clientService := service.NewClientService(clientRepo, cfg.App.PhoneRegion)
	supplierService := service.NewSupplierService(supplierRepo, cfg.App.PhoneRegion)
	taxService := service.NewTaxService(taxRepo)
	ticketService := service.NewTicketService(ticketRepo, invoiceRepo, articleRepo, taxRepo, clientRepo, sequenceRepo)
	quoteService := service.NewQuoteService(quoteRepo, ticketRepo, invoiceRepo, articleRepo, taxRepo, clientRepo, sequenceRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, articleRepo, taxRepo, clientRepo, sequenceRepo)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, articleRepo, taxRepo, supplierRepo, sequenceRepo)
	paymentService := service.NewPaymentService(paymentRepo, ticketRepo, invoiceRepo, purchaseOrderRepo, bankRepo)
	bankService := service.NewBankService(bankRepo)
	cashRegisterService := service.NewCashRegisterService(cashRegisterRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, articleRepo)
	reportService := service.NewReportService(analyticsRepo, articleRepo, paymentRepo)
	printerService := service.NewPrinterService(ticketRepo, taxRepo, settingsRepo, device, cfg.Printer.CharWidth)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService, cfg.OAuth.FrontendSuccessURL, cfg.OAuth.FrontendErrorURL),
		Article:       handler.NewArticleHandler(articleService),
		Client:        handler.NewClientHandler(clientService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		Tax:           handler.NewTaxHandler(taxService),
		Ticket:        handler.NewTicketHandler(ticketService, printerService),
		Quote:         handler.NewQuoteHandler(quoteService),
		Invoice:       handler.NewInvoiceHandler(invoiceService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		Payment:       handler.NewPaymentHandler(paymentService),
		Bank:          handler.NewBankHandler(bankService),
		CashRegister:  handler.NewCashRegisterHandler(cashRegisterService),
		Settings:      handler.NewSettingsHandler(settingsService),
		User:          handler.NewUserHandler(userService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		Report:        handler.NewReportHandler(reportService),
		Printer:       handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Infof("Starting %s server on port %s", cfg.App.Name, port)
	log.Infof("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
