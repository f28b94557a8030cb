package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/casaledger/casaledger-api/docs" // Swagger docs
	"github.com/casaledger/casaledger-api/internal/config"
	"github.com/casaledger/casaledger-api/internal/database"
	"github.com/casaledger/casaledger-api/internal/handlers"
	"github.com/casaledger/casaledger-api/internal/jobs"
	"github.com/casaledger/casaledger-api/internal/middleware"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/casaledger/casaledger-api/internal/storage"
	"github.com/casaledger/casaledger-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title CasaLedger API
// @version 1.0
// @description REST API for a small-business bookkeeping system: customers, projects, transactions and petty-cash advances

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize receipt storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.GET("/users/:user_id", h.User.Show)
				admin.PUT("/users/:user_id", h.User.Update)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.POST("/users/:user_id/toggle_status", h.User.ToggleStatus)

				// Destructive operations
				admin.DELETE("/customers/:customer_id", h.Customer.Delete)
				admin.DELETE("/employees/:employee_id", h.Employee.Delete)
				admin.DELETE("/projects/:project_id", h.Project.Delete)
				admin.DELETE("/transactions/:transaction_id", h.Transaction.Delete)
				admin.DELETE("/advances/:advance_id", h.Advance.Delete)

				// Cache management
				admin.POST("/analytics/dashboard/refresh", h.Analytics.Refresh)

				// Worker status
				admin.GET("/jobs/status", h.Job.Status)
			}

			// Password change for the current user
			protected.POST("/users/change_password", h.User.ChangePassword)

			// Customers
			protected.GET("/customers", h.Customer.Index)
			protected.POST("/customers", h.Customer.Create)
			protected.GET("/customers/:customer_id", h.Customer.Show)
			protected.PUT("/customers/:customer_id", h.Customer.Update)

			// Employees
			protected.GET("/employees", h.Employee.Index)
			protected.POST("/employees", h.Employee.Create)
			protected.GET("/employees/:employee_id", h.Employee.Show)
			protected.PUT("/employees/:employee_id", h.Employee.Update)

			// Projects
			protected.GET("/projects", h.Project.Index)
			protected.POST("/projects", h.Project.Create)
			protected.GET("/projects/:project_id", h.Project.Show)
			protected.PUT("/projects/:project_id", h.Project.Update)
			protected.POST("/projects/:project_id/activate", h.Project.Activate)
			protected.POST("/projects/:project_id/complete", h.Project.Complete)
			protected.POST("/projects/:project_id/cancel", h.Project.Cancel)

			// Transactions
			protected.GET("/transactions", h.Transaction.Index)
			protected.POST("/transactions", h.Transaction.Create)
			protected.GET("/transactions/:transaction_id", h.Transaction.Show)
			protected.PUT("/transactions/:transaction_id", h.Transaction.Update)
			protected.POST("/transactions/:transaction_id/receipt", h.Transaction.UploadReceipt)
			protected.GET("/transactions/:transaction_id/receipt", h.Transaction.DownloadReceipt)

			// Petty-cash advances
			protected.GET("/advances", h.Advance.Index)
			protected.POST("/advances", h.Advance.Create)
			protected.GET("/advances/:advance_id", h.Advance.Show)
			protected.POST("/advances/:advance_id/expense", h.Advance.RegisterExpense)
			protected.POST("/advances/:advance_id/return", h.Advance.RegisterReturn)
			protected.POST("/advances/:advance_id/close", h.Advance.Close)

			// Activity log
			protected.GET("/activity", h.Activity.Index)

			// Analytics
			protected.GET("/analytics/dashboard", h.Analytics.Dashboard)

			// Reports
			protected.GET("/reports/ledger_xlsx", h.Report.LedgerXLSX)
			protected.GET("/reports/monthly_expenses_csv", h.Report.MonthlyExpensesCSV)
			protected.GET("/reports/project_statement_pdf", h.Report.ProjectStatementPDF)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Refresh the dashboard cache every 15 minutes
	worker.ScheduleEveryImmediate(15*time.Minute, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing dashboard cache...")
		_, err := svcs.Analytics.RefreshCache(ctx)
		return err
	})

	// Daily reminder for advances left open too long
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		if !svcs.Email.Enabled() || cfg.AdminEmail == "" {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -cfg.AdvanceReminderDays)
		advances, err := svcs.Advance.FindOpenOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		if len(advances) == 0 {
			return nil
		}
		logger.Info("[Job] Sending open advance reminder", "count", len(advances))
		return svcs.Email.SendOpenAdvanceReminder(ctx, cfg.AdminEmail, advances)
	})

	logger.Info("Scheduled recurring jobs")
}
