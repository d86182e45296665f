package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mbayedev/partstore-api/internal/config"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/handler"
	"github.com/mbayedev/partstore-api/internal/presentation/http/middleware"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Article       *handler.ArticleHandler
	Client        *handler.ClientHandler
	Supplier      *handler.SupplierHandler
	Tax           *handler.TaxHandler
	Ticket        *handler.TicketHandler
	Quote         *handler.QuoteHandler
	Invoice       *handler.InvoiceHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Payment       *handler.PaymentHandler
	Bank          *handler.BankHandler
	CashRegister  *handler.CashRegisterHandler
	Settings      *handler.SettingsHandler
	User          *handler.UserHandler
	Dashboard     *handler.DashboardHandler
	Report        *handler.ReportHandler
	Printer       *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Uploaded article images and logos
	router.Static("/storage", deps.Cfg.Storage.Path)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	registerArticleRoutes(protected, h, deps)
	registerClientRoutes(protected, h)
	registerSupplierRoutes(protected, h)
	registerTaxRoutes(protected, h)
	registerTicketRoutes(protected, h, deps)
	registerQuoteRoutes(protected, h, deps)
	registerInvoiceRoutes(protected, h, deps)
	registerPurchaseOrderRoutes(protected, h, deps)
	registerPaymentRoutes(protected, h, deps)
	registerBankRoutes(protected, h, deps)
	registerCashRegisterRoutes(protected, h, deps)
	registerSettingsRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerDashboardRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerArticleRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	articles := rg.Group("/articles")
	articles.Use(middleware.RequirePermission("manage-articles"))
	{
		articles.GET("", h.Article.List)
		articles.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Article.Create)
		articles.GET("/low-stock", h.Article.LowStock)
		articles.GET("/barcode/:barcode", h.Article.GetByBarcode)
		articles.GET("/:id", h.Article.Get)
		articles.PUT("/:id", h.Article.Update)
		articles.POST("/:id/image", h.Article.UploadImage)
		articles.DELETE("/:id", h.Article.Delete)
	}

	categories := rg.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-articles"))
	{
		categories.GET("", h.Article.ListCategories)
		categories.POST("", h.Article.CreateCategory)
		categories.PUT("/:id", h.Article.UpdateCategory)
		categories.DELETE("/:id", h.Article.DeleteCategory)
	}
}

func registerClientRoutes(rg *gin.RouterGroup, h *Handlers) {
	clients := rg.Group("/clients")
	clients.Use(middleware.RequirePermission("manage-clients"))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerSupplierRoutes(rg *gin.RouterGroup, h *Handlers) {
	suppliers := rg.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission("manage-suppliers"))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerTaxRoutes(rg *gin.RouterGroup, h *Handlers) {
	taxes := rg.Group("/taxes")
	taxes.Use(middleware.RequirePermission("manage-taxes"))
	{
		taxes.GET("", h.Tax.List)
		taxes.POST("", h.Tax.Create)
		taxes.GET("/:id", h.Tax.Get)
		taxes.PUT("/:id", h.Tax.Update)
		taxes.DELETE("/:id", h.Tax.Delete)
	}
}

func registerTicketRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	tickets := rg.Group("/tickets")
	tickets.Use(middleware.RequirePermission("manage-tickets"))
	{
		tickets.GET("", h.Ticket.List)
		// A retried sale must not decrement stock twice
		tickets.POST("", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Ticket.Create)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.POST("/:id/cancel", h.Ticket.Cancel)
		tickets.POST("/:id/invoice", h.Ticket.TransferToInvoice)
		tickets.POST("/:id/print", h.Ticket.Print)
	}
}

func registerQuoteRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	quotes := rg.Group("/quotes")
	quotes.Use(middleware.RequirePermission("manage-quotes"))
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.PATCH("/:id/status", h.Quote.UpdateStatus)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.POST("/:id/ticket", h.Quote.TransferToTicket)
		quotes.POST("/:id/invoice", h.Quote.TransferToInvoice)
	}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := rg.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
	}
}

func registerPurchaseOrderRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := rg.Group("/purchase-orders")
	orders.Use(middleware.RequirePermission("manage-purchase-orders"))
	{
		orders.GET("", h.PurchaseOrder.List)
		orders.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.PurchaseOrder.Create)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.PUT("/:id", h.PurchaseOrder.Update)
		orders.POST("/:id/validate", h.PurchaseOrder.Validate)
		orders.POST("/:id/receive", h.PurchaseOrder.Receive)
		orders.POST("/:id/cancel", h.PurchaseOrder.Cancel)
	}
}

func registerPaymentRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := rg.Group("/payments")
	payments.Use(middleware.RequirePermission("manage-payments"))
	{
		payments.GET("", h.Payment.List)
		// A retried payment must not be recorded twice
		payments.POST("", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Payment.Record)
		payments.GET("/:id", h.Payment.Get)
	}

	documents := rg.Group("/documents")
	documents.Use(middleware.RequirePermission("manage-payments"))
	{
		documents.GET("/:kind/:id/payments", h.Payment.ListForDocument)
	}
}

func registerBankRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	banks := rg.Group("/banks")
	banks.Use(middleware.RequirePermission("manage-banks"))
	{
		banks.GET("", h.Bank.List)
		banks.POST("", h.Bank.Create)
		banks.GET("/:id", h.Bank.Get)
		banks.PUT("/:id", h.Bank.Update)
		banks.DELETE("/:id", h.Bank.Delete)
		banks.GET("/:id/transactions", h.Bank.ListTransactions)
		banks.POST("/:id/transactions", middleware.Idempotency(deps.IdempotencyRepo), h.Bank.RecordTransaction)
	}
}

func registerCashRegisterRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	register := rg.Group("/cash-register")
	register.Use(middleware.RequirePermission("manage-cash-register"))
	{
		register.GET("/entries", h.CashRegister.ListEntries)
		register.POST("/entries", middleware.Idempotency(deps.IdempotencyRepo), h.CashRegister.RecordEntry)
		register.DELETE("/entries/:id", h.CashRegister.DeleteEntry)
		register.GET("/summary", h.CashRegister.DailySummary)
	}
}

func registerSettingsRoutes(rg *gin.RouterGroup, h *Handlers) {
	settings := rg.Group("/settings")
	settings.Use(middleware.RequirePermission("manage-settings"))
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", h.Settings.Update)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
		users.POST("/:id/roles", h.User.AssignRole)
		users.DELETE("/:id/roles/:role", h.User.RemoveRole)
	}

	roles := rg.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
		roles.GET("/:id", h.User.GetRole)
		roles.PUT("/:id/permissions", h.User.SyncRolePermissions)
	}

	permissions := rg.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerDashboardRoutes(rg *gin.RouterGroup, h *Handlers) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("/summary", h.Dashboard.Summary)
		dashboard.GET("/top-articles", h.Dashboard.TopArticles)
		dashboard.GET("/top-clients", h.Dashboard.TopClients)
		dashboard.GET("/daily-sales", h.Dashboard.DailySales)
		dashboard.GET("/receivables", h.Dashboard.Receivables)
		dashboard.GET("/low-stock", h.Dashboard.LowStock)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/inventory", h.Report.Inventory)
		reports.GET("/daily-sales", h.Report.DailySales)
		reports.GET("/receivables", h.Report.Receivables)
		reports.GET("/payments", h.Report.Payments)
	}
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	printer.Use(middleware.RequirePermission("manage-tickets"))
	{
		printer.GET("/status", h.Printer.Status)
	}
}
