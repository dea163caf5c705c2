package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/config"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/database"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/events"
	infraRepo "github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/handler"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/middleware"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/routes"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/numerator"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/printer"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/utils"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Logger())
	if err != nil {
		logger.Default().Fatalw("failed to build logger", "error", err)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	if err := database.SeedAdmin(ctx, db, database.AdminSeed{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}); err != nil {
		log.Warnw("failed to seed admin user", "error", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	loc := cfg.Store.Location()

	// Initialize repositories
	txManager := database.NewTxManager(db)
	userRepo := infraRepo.NewUserRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	var expenseRepo repository.ExpenseRepository
	if cfg.Features.Expenses {
		expenseRepo = infraRepo.NewExpenseRepository(db)
	}

	orderNumbers := numerator.New(infraRepo.NewSequenceRepository(db), cfg.OrderNo.Numerator())

	// Order events go to redis when configured
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Redis.Addr != "" {
		client := events.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		redisPublisher := events.NewRedisPublisher(client)
		if err := redisPublisher.Ping(ctx); err != nil {
			log.Warnw("redis is not reachable at startup", "addr", cfg.Redis.Addr, "error", err)
		}
		publisher = redisPublisher
	}

	// A misconfigured printer is reported but does not stop the server
	sink, err := printer.NewSink(cfg.Printer.Sink())
	if err != nil {
		log.Errorw("printer is misconfigured", "error", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(txManager, orderRepo, customerRepo, productRepo, orderNumbers, publisher, loc)
	formatter := service.NewReceiptFormatter(cfg.Store.Name, cfg.Printer.Width, loc)
	printerService := service.NewPrinterService(sink, orderRepo, formatter, publisher)
	dashboardService := service.NewDashboardService(analyticsRepo, expenseRepo, loc)
	catalogService := service.NewCatalogService(productRepo)
	clockService := service.NewClockService(loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Order:     handler.NewOrderHandler(orderService),
		Printer:   handler.NewPrinterHandler(printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Clock:     handler.NewClockHandler(clockService),
	}

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          log,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}
}

func sweepIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				logger.Warn(ctx, "failed to delete expired idempotency keys", "error", err)
			}
		}
	}
}
