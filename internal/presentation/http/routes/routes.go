package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/config"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	domainRepo "github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/handler"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/middleware"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Printer   *handler.PrinterHandler
	Dashboard *handler.DashboardHandler
	Catalog   *handler.CatalogHandler
	Clock     *handler.ClockHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logger.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.GET("/clock", h.Clock.Now)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission(entity.PermissionViewDashboard), h.Dashboard.GetStats)
	protected.GET("/dashboard/expenses", middleware.RequirePermission(entity.PermissionViewDashboard), h.Dashboard.GetExpenseBreakdown)

	// Catalog
	protected.GET("/catalog/products/:id/price", middleware.RequirePermission(entity.PermissionViewCatalog), h.Catalog.GetPrice)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission(entity.PermissionManageOrders))
	{
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.POST("/:id/payments", h.Order.AddPayment)
		orders.POST("/:id/complete", h.Order.Complete)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/recalculate", h.Order.Recalculate)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("")
	printerGroup.Use(middleware.RequirePermission(entity.PermissionPrintReceipts))
	{
		printerGroup.GET("/printer/status", h.Printer.GetStatus)
		printerGroup.POST("/printer/test", h.Printer.TestPrint)
		printerGroup.GET("/orders/:id/print/:variant/preview", h.Printer.Preview)
		printerGroup.POST("/orders/:id/print/:variant", h.Printer.Print)
	}
}
