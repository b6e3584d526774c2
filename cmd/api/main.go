package main

import (
	"fmt"
	"net/http"
	"os"

	"paisa/internal/config"
	"paisa/internal/database"
	"paisa/internal/handlers"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/services"
	"paisa/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Paisa API
// @version         1.0
// @description     Paisa is a personal finance tracker for recording income, expenses and savings contributions, with monthly dashboards and CSV export.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewLoginAuditService(db)
	otpService := services.NewOTPService(db, services.NewLogMailer())
	sourceService := services.NewIncomeSourceService(db)
	verticalService := services.NewExpenseVerticalService(db)
	userService := services.NewUserService(db, otpService, auditService, sourceService, verticalService)
	instrumentService := services.NewSavingsInstrumentService(db)
	incomeService := services.NewIncomeEntryService(db, sourceService)
	expenseService := services.NewExpenseEntryService(db, verticalService)
	savingsService := services.NewSavingsEntryService(db, instrumentService)
	dashboardService := services.NewDashboardService(db)
	exportService := services.NewExportService(db, dashboardService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, otpService)
	masterHandler := handlers.NewMasterHandler(sourceService, verticalService, instrumentService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	savingsHandler := handlers.NewSavingsHandler(savingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/otp/send", authHandler.SendOTP)
	auth.POST("/otp/verify", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password/verify-email", authHandler.VerifySecurityEmail)
	auth.POST("/forgot-password/reset", authHandler.ResetPassword)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and account
	protected.GET("/profile", authHandler.GetProfile)
	protected.DELETE("/auth/delete-account", authHandler.DeleteAccount)

	// Master data routes
	sources := protected.Group("/sources")
	sources.POST("", masterHandler.CreateIncomeSource)
	sources.GET("", masterHandler.ListIncomeSources)
	sources.PUT("/:id", masterHandler.UpdateIncomeSource)
	sources.DELETE("/:id", masterHandler.DeleteIncomeSource)

	verticals := protected.Group("/verticals")
	verticals.POST("", masterHandler.CreateExpenseVertical)
	verticals.GET("", masterHandler.ListExpenseVerticals)
	verticals.PUT("/:id", masterHandler.UpdateExpenseVertical)
	verticals.DELETE("/:id", masterHandler.DeleteExpenseVertical)

	instruments := protected.Group("/instruments")
	instruments.POST("", masterHandler.CreateSavingsInstrument)
	instruments.GET("", masterHandler.ListSavingsInstruments)
	instruments.PUT("/:id", masterHandler.UpdateSavingsInstrument)
	instruments.DELETE("/:id", masterHandler.DeleteSavingsInstrument)

	// Ledger routes
	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateEntry)
	income.GET("", incomeHandler.ListEntries)
	income.GET("/:id", incomeHandler.GetEntry)
	income.PUT("/:id", incomeHandler.UpdateEntry)
	income.DELETE("/:id", incomeHandler.DeleteEntry)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateEntry)
	expenses.GET("", expenseHandler.ListEntries)
	expenses.GET("/:id", expenseHandler.GetEntry)
	expenses.PUT("/:id", expenseHandler.UpdateEntry)
	expenses.DELETE("/:id", expenseHandler.DeleteEntry)

	savings := protected.Group("/savings")
	savings.POST("", savingsHandler.CreateEntry)
	savings.GET("", savingsHandler.ListEntries)
	savings.GET("/:id", savingsHandler.GetEntry)
	savings.PUT("/:id", savingsHandler.UpdateEntry)
	savings.DELETE("/:id", savingsHandler.DeleteEntry)

	// Reporting routes
	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/export", exportHandler.Export)

	log.Infof("Starting Paisa backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
