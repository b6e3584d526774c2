package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"paisa/internal/handlers"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/models"
	"paisa/internal/services"
	"paisa/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Mailer *captureMailer
}

// captureMailer records verification codes instead of sending mail so tests
// can complete the email verification step.
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *captureMailer) SendOTP(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[email] = code
	return nil
}

func (m *captureMailer) lastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.LoginAttempt{},
		&models.EmailVerification{},
		&models.IncomeSource{},
		&models.ExpenseVertical{},
		&models.SavingsInstrument{},
		&models.IncomeEntry{},
		&models.ExpenseEntry{},
		&models.SavingsEntry{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	mailer := &captureMailer{}

	// Services
	auditService := services.NewLoginAuditService(db)
	otpService := services.NewOTPService(db, mailer)
	sourceService := services.NewIncomeSourceService(db)
	verticalService := services.NewExpenseVerticalService(db)
	userService := services.NewUserService(db, otpService, auditService, sourceService, verticalService)
	instrumentService := services.NewSavingsInstrumentService(db)
	incomeService := services.NewIncomeEntryService(db, sourceService)
	expenseService := services.NewExpenseEntryService(db, verticalService)
	savingsService := services.NewSavingsEntryService(db, instrumentService)
	dashboardService := services.NewDashboardService(db)
	exportService := services.NewExportService(db, dashboardService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, otpService)
	masterHandler := handlers.NewMasterHandler(sourceService, verticalService, instrumentService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	savingsHandler := handlers.NewSavingsHandler(savingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/otp/send", authHandler.SendOTP)
	auth.POST("/otp/verify", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password/verify-email", authHandler.VerifySecurityEmail)
	auth.POST("/forgot-password/reset", authHandler.ResetPassword)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.DELETE("/auth/delete-account", authHandler.DeleteAccount)

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

	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/export", exportHandler.Export)

	return &testApp{DB: db, Router: router, Mailer: mailer}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// verifyEmail completes the verification step through the OTP endpoints.
func (app *testApp) verifyEmail(t *testing.T, email string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/auth/otp/send", fmt.Sprintf(`{"email":%q}`, email), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("otp send failed: %d %s", rec.Code, rec.Body.String())
	}
	code := app.Mailer.lastCode(email)
	if code == "" {
		t.Fatalf("no verification code captured for %s", email)
	}
	rec = app.request("POST", "/api/v1/auth/otp/verify",
		fmt.Sprintf(`{"email":%q,"code":%q}`, email, code), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("otp verify failed: %d %s", rec.Code, rec.Body.String())
	}
}

// registerUser verifies the email and registers a new user, returning the
// session token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	app.verifyEmail(t, email)
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the session token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}
