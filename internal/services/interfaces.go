package services

import (
	"github.com/shopspring/decimal"

	"paisa/internal/models"
	"paisa/internal/pagination"
)

// UserServicer defines the contract for user and authentication business logic.
type UserServicer interface {
	Register(email, password, displayName, securityQuestion, securityAnswer string) (*models.User, error)
	AttemptLogin(email, password, ipAddress string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetSecurityQuestion(email string) (string, error)
	ResetPasswordWithAnswer(email, answer, newPassword string) error
	DeleteAccount(userID, password string) error
}

// OTPServicer defines the contract for registration email verification.
type OTPServicer interface {
	Send(email string) error
	Verify(email, code string) error
	ConsumeVerified(email string) error
}

// LoginAuditServicer records authentication attempts in the append-only audit log.
type LoginAuditServicer interface {
	Record(email string, userID *string, success bool, reason, ipAddress string)
}

// IncomeSourceServicer defines the contract for user-owned income source categories.
type IncomeSourceServicer interface {
	Create(userID, name string) (*models.IncomeSource, error)
	List(userID string) ([]models.IncomeSource, error)
	GetByID(userID, sourceID string) (*models.IncomeSource, error)
	Update(userID, sourceID, name string) (*models.IncomeSource, error)
	Delete(userID, sourceID string) error
	SeedDefaults(userID string) error
}

// ExpenseVerticalServicer defines the contract for user-owned expense vertical categories.
type ExpenseVerticalServicer interface {
	Create(userID, name string) (*models.ExpenseVertical, error)
	List(userID string) ([]models.ExpenseVertical, error)
	GetByID(userID, verticalID string) (*models.ExpenseVertical, error)
	Update(userID, verticalID, name string) (*models.ExpenseVertical, error)
	Delete(userID, verticalID string) error
	SeedDefaults(userID string) error
}

// SavingsInstrumentServicer defines the contract for the globally shared
// savings instrument table. Instruments are not user-owned; deletion is
// blocked while any user's entries reference them.
type SavingsInstrumentServicer interface {
	Create(name string, bucket models.InstrumentBucket) (*models.SavingsInstrument, error)
	List(bucket *models.InstrumentBucket) ([]models.SavingsInstrument, error)
	GetByID(instrumentID string) (*models.SavingsInstrument, error)
	Update(instrumentID, name string) (*models.SavingsInstrument, error)
	Delete(instrumentID string) error
}

// EntryUpdate holds optional fields for updating a ledger entry. Nil fields
// are left unchanged.
type EntryUpdate struct {
	CategoryID *string
	Month      *string
	Amount     *decimal.Decimal
	Note       *string
}

// IncomeEntryServicer defines the contract for the income ledger.
type IncomeEntryServicer interface {
	Create(userID, sourceID, monthToken string, amount decimal.Decimal, note string) (*models.IncomeEntry, error)
	List(userID string, monthToken *string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error)
	GetByID(userID, entryID string) (*models.IncomeEntry, error)
	Update(userID, entryID string, update EntryUpdate) (*models.IncomeEntry, error)
	Delete(userID, entryID string) error
}

// ExpenseEntryServicer defines the contract for the expense ledger.
type ExpenseEntryServicer interface {
	Create(userID, verticalID, monthToken string, amount decimal.Decimal, note string) (*models.ExpenseEntry, error)
	List(userID string, monthToken *string, page pagination.PageRequest) (*pagination.PageResponse[models.ExpenseEntry], error)
	GetByID(userID, entryID string) (*models.ExpenseEntry, error)
	Update(userID, entryID string, update EntryUpdate) (*models.ExpenseEntry, error)
	Delete(userID, entryID string) error
}

// SavingsEntryServicer defines the contract for the savings ledger.
type SavingsEntryServicer interface {
	Create(userID, instrumentID, monthToken string, amount decimal.Decimal, note string) (*models.SavingsEntry, error)
	List(userID string, monthToken *string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsEntry], error)
	GetByID(userID, entryID string) (*models.SavingsEntry, error)
	Update(userID, entryID string, update EntryUpdate) (*models.SavingsEntry, error)
	Delete(userID, entryID string) error
}

// RangeSummary contains the aggregate figures for a month range.
type RangeSummary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
	SavingsRate   decimal.Decimal `json:"savings_rate"`
	ExpenseRatio  decimal.Decimal `json:"expense_ratio"`
}

// MonthlyRow is one calendar month's totals within a dashboard range.
// Months without entries are zero-filled.
type MonthlyRow struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
	Net      decimal.Decimal `json:"net"`
}

// BreakdownRow maps a category name to its summed amount.
type BreakdownRow struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdowns groups the four per-category rollup tables.
type Breakdowns struct {
	IncomeBySource      []BreakdownRow `json:"income_by_source"`
	ExpensesByVertical  []BreakdownRow `json:"expenses_by_vertical"`
	SavingsByBucket     []BreakdownRow `json:"savings_by_bucket"`
	SavingsByInstrument []BreakdownRow `json:"savings_by_instrument"`
}

// Dashboard is the aggregation payload shaped for chart consumption.
type Dashboard struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Summary     RangeSummary `json:"summary"`
	MonthlyData []MonthlyRow `json:"monthly_data"`
	Breakdowns  Breakdowns   `json:"breakdowns"`
}

// DashboardServicer defines the contract for the aggregation/reporting engine.
type DashboardServicer interface {
	GetDashboard(userID, from, to string) (*Dashboard, error)
}

// ExportResult holds a rendered CSV export ready to be written as an attachment.
type ExportResult struct {
	Filename string
	Data     []byte
}

// ExportServicer defines the contract for single-month CSV exports.
type ExportServicer interface {
	Export(userID, monthToken, exportType string) (*ExportResult, error)
}
