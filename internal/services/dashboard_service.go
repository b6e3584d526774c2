package services

import (
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/month"
)

var oneHundred = decimal.NewFromInt(100)

// dashboardService is the aggregation/reporting engine. It fetches all three
// ledgers for the range in one pass each and folds the totals in memory.
// Acceptable only because data volume is household scale.
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

// GetDashboard aggregates the user's ledgers over the inclusive month range
// [from, to]. A range with no entries yields an all-zero payload, not an error.
func (s *dashboardService) GetDashboard(userID, from, to string) (*Dashboard, error) {
	months, err := month.Range(from, to)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidRange, err.Error())
	}

	var incomes []models.IncomeEntry
	if err := s.db.Preload("Source").
		Where("user_id = ? AND month IN ?", userID, months).
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var expenses []models.ExpenseEntry
	if err := s.db.Preload("Vertical").
		Where("user_id = ? AND month IN ?", userID, months).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var savings []models.SavingsEntry
	if err := s.db.Preload("Instrument").
		Where("user_id = ? AND month IN ?", userID, months).
		Find(&savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Zero-filled month rows keep charts continuous over empty months.
	monthIndex := make(map[string]*MonthlyRow, len(months))
	monthlyData := make([]MonthlyRow, len(months))
	for i, m := range months {
		monthlyData[i] = MonthlyRow{Month: m}
		monthIndex[m] = &monthlyData[i]
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	totalSavings := decimal.Zero

	bySource := make(map[string]decimal.Decimal)
	byVertical := make(map[string]decimal.Decimal)
	byBucket := make(map[string]decimal.Decimal)
	byInstrument := make(map[string]decimal.Decimal)

	for _, e := range incomes {
		totalIncome = totalIncome.Add(e.Amount)
		monthIndex[e.Month].Income = monthIndex[e.Month].Income.Add(e.Amount)
		bySource[e.Source.Name] = bySource[e.Source.Name].Add(e.Amount)
	}
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
		monthIndex[e.Month].Expenses = monthIndex[e.Month].Expenses.Add(e.Amount)
		byVertical[e.Vertical.Name] = byVertical[e.Vertical.Name].Add(e.Amount)
	}
	for _, e := range savings {
		totalSavings = totalSavings.Add(e.Amount)
		monthIndex[e.Month].Savings = monthIndex[e.Month].Savings.Add(e.Amount)
		byBucket[e.Instrument.Bucket.Label()] = byBucket[e.Instrument.Bucket.Label()].Add(e.Amount)
		byInstrument[e.Instrument.Name] = byInstrument[e.Instrument.Name].Add(e.Amount)
	}

	for i := range monthlyData {
		row := &monthlyData[i]
		row.Net = row.Income.Sub(row.Expenses).Sub(row.Savings)
	}

	summary := RangeSummary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		TotalSavings:  totalSavings,
		NetCashFlow:   totalIncome.Sub(totalExpenses).Sub(totalSavings),
		SavingsRate:   ratio(totalSavings, totalIncome),
		ExpenseRatio:  ratio(totalExpenses, totalIncome),
	}

	return &Dashboard{
		From:        from,
		To:          to,
		Summary:     summary,
		MonthlyData: monthlyData,
		Breakdowns: Breakdowns{
			IncomeBySource:      toBreakdownRows(bySource),
			ExpensesByVertical:  toBreakdownRows(byVertical),
			SavingsByBucket:     toBreakdownRows(byBucket),
			SavingsByInstrument: toBreakdownRows(byInstrument),
		},
	}, nil
}

// ratio returns part/whole as a percentage rounded to two decimals, or zero
// when the whole is zero.
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(oneHundred).Round(2)
}

// toBreakdownRows converts a name->sum map into rows sorted by amount
// descending, ties broken by name, so chart output is deterministic.
func toBreakdownRows(sums map[string]decimal.Decimal) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(sums))
	for name, amount := range sums {
		rows = append(rows, BreakdownRow{Name: name, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
