package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billbox/internal/config"
	"billbox/internal/database"
	"billbox/internal/handlers"
	"billbox/internal/middleware"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err.Error())
		os.Exit(1)
	}

	ctx := context.Background()

	extractor, err := services.NewVisionExtractor(ctx, cfg.Extraction)
	if err != nil {
		slog.Error("Failed to initialize document text extraction client", "error", err.Error())
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	recurringRepo := repositories.NewRecurringRuleRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	breaker := services.NewCircuitBreaker(services.DefaultCircuitBreakerConfig())
	generator := services.NewHuggingFaceGenerator(cfg.Generation, breaker)
	authAdmin := services.NewSupabaseAdmin(cfg.Auth)

	userService := services.NewUserService(userRepo, authAdmin, logger)
	categoryService := services.NewCategoryService(categoryRepo, userRepo, logger)
	ledgerService := services.NewLedgerService(transactionRepo, metrics, logger)
	recurringService := services.NewRecurringService(recurringRepo, ledgerService, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, logger)
	ingestionService := services.NewIngestionService(extractor, generator, receiptRepo, userRepo, metrics, logger)
	receiptService := services.NewReceiptService(receiptRepo, logger)
	seeder := services.NewDemoSeeder(userRepo, categoryRepo, recurringRepo, budgetRepo, ledgerService, logger)

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	receiptHandler := handlers.NewReceiptHandler(ingestionService, receiptService)
	devHandler := handlers.NewDevHandler(seeder)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Admin routes require a provider token when a signing secret is configured
	adminGuard := []echo.MiddlewareFunc{}
	if cfg.Auth.JWTSecret != "" {
		adminGuard = append(adminGuard, middleware.RequireAuth(cfg.Auth.JWTSecret), middleware.RequireAdmin())
	} else {
		slog.Warn("SUPABASE_JWT_SECRET not set, admin routes are unprotected")
	}

	users := e.Group("/users")
	users.GET("", userHandler.GetAllUsers)
	users.DELETE("/:userId", userHandler.DeleteUser, adminGuard...)
	users.GET("/categories/:userId", categoryHandler.GetUserCategories)
	users.POST("/categories", categoryHandler.CreateCategory)
	users.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	users.GET("/transactions/:userId", transactionHandler.GetUserTransactions)
	users.POST("/transactions", transactionHandler.CreateTransaction)
	users.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	recTrans := e.Group("/recTrans")
	recTrans.GET("/all", recurringHandler.GetAllRules)
	recTrans.GET("/user/:userId", recurringHandler.GetUserRules)
	recTrans.POST("/process", recurringHandler.ProcessRules)
	recTrans.POST("/:userId", recurringHandler.CreateRule)
	recTrans.DELETE("/:id", recurringHandler.DeleteRule)

	budget := e.Group("/budget")
	budget.GET("/:userId/:categoryId", budgetHandler.GetBudget)
	budget.GET("/:userId/:categoryId/consumption", budgetHandler.GetConsumption)
	budget.POST("/:userId/:categoryId", budgetHandler.UpsertBudget)
	budget.PATCH("/:userId/:categoryId", budgetHandler.PatchBudget)
	budget.DELETE("/:userId/:categoryId", budgetHandler.DeleteBudget)

	billbox := e.Group("/billbox")
	billbox.POST("/extract", receiptHandler.ExtractText)
	billbox.POST("/logic", receiptHandler.StructureText)
	billbox.POST("/full-process/:userId", receiptHandler.FullProcess)
	billbox.GET("/data", receiptHandler.GetAllReceipts)
	billbox.GET("/receipts/user/:userId", receiptHandler.GetUserReceipts)
	billbox.PATCH("/receipts/:receiptId", receiptHandler.UpdateReceipt)
	billbox.DELETE("/receipts/:receiptId", receiptHandler.DeleteReceipt)
	billbox.PATCH("/items/:itemId", receiptHandler.UpdateItem)
	billbox.DELETE("/items/:itemId", receiptHandler.DeleteItem)

	if !cfg.IsProduction() {
		e.POST("/dev/seed", devHandler.SeedDemoData)
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err.Error())
	}
}
