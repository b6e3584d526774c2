package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/month"
)

// exportService renders single-month CSV exports. The whole body is built in
// memory; fine at household scale.
type exportService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB, dashboard DashboardServicer) ExportServicer {
	return &exportService{db: db, dashboard: dashboard}
}

// Export renders the requested export type for exactly one month.
func (s *exportService) Export(userID, monthToken, exportType string) (*ExportResult, error) {
	if !month.IsValid(monthToken) {
		return nil, apperrors.ErrInvalidMonth
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var err error
	switch exportType {
	case "income":
		err = s.writeIncome(w, userID, monthToken)
	case "expenses":
		err = s.writeExpenses(w, userID, monthToken)
	case "savings":
		err = s.writeSavings(w, userID, monthToken)
	case "summary":
		err = s.writeSummary(w, userID, monthToken)
	default:
		return nil, apperrors.ErrInvalidExportType
	}
	if err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &ExportResult{
		Filename: fmt.Sprintf("paisa-%s-%s.csv", exportType, monthToken),
		Data:     buf.Bytes(),
	}, nil
}

func (s *exportService) writeIncome(w *csv.Writer, userID, monthToken string) error {
	var entries []models.IncomeEntry
	if err := s.db.Preload("Source").
		Where("user_id = ? AND month = ?", userID, monthToken).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := w.Write([]string{"Source", "Month", "Amount", "Note", "Created"}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, e := range entries {
		record := []string{e.Source.Name, e.Month, e.Amount.String(), e.Note, e.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func (s *exportService) writeExpenses(w *csv.Writer, userID, monthToken string) error {
	var entries []models.ExpenseEntry
	if err := s.db.Preload("Vertical").
		Where("user_id = ? AND month = ?", userID, monthToken).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := w.Write([]string{"Vertical", "Month", "Amount", "Note", "Created"}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, e := range entries {
		record := []string{e.Vertical.Name, e.Month, e.Amount.String(), e.Note, e.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func (s *exportService) writeSavings(w *csv.Writer, userID, monthToken string) error {
	var entries []models.SavingsEntry
	if err := s.db.Preload("Instrument").
		Where("user_id = ? AND month = ?", userID, monthToken).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := w.Write([]string{"Instrument", "Bucket", "Month", "Amount", "Note", "Created"}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, e := range entries {
		record := []string{
			e.Instrument.Name,
			e.Instrument.Bucket.Label(),
			e.Month,
			e.Amount.String(),
			e.Note,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// writeSummary re-runs the single-month aggregation and emits section rows.
func (s *exportService) writeSummary(w *csv.Writer, userID, monthToken string) error {
	dash, err := s.dashboard.GetDashboard(userID, monthToken, monthToken)
	if err != nil {
		return err
	}

	records := [][]string{
		{"Metric", "Value"},
		{"Month", monthToken},
		{"Total Income", dash.Summary.TotalIncome.String()},
		{"Total Expenses", dash.Summary.TotalExpenses.String()},
		{"Total Savings", dash.Summary.TotalSavings.String()},
		{"Net Cash Flow", dash.Summary.NetCashFlow.String()},
		{"Savings Rate %", dash.Summary.SavingsRate.String()},
		{"Expense Ratio %", dash.Summary.ExpenseRatio.String()},
	}

	sections := []struct {
		title string
		rows  []BreakdownRow
	}{
		{"Income by Source", dash.Breakdowns.IncomeBySource},
		{"Expenses by Vertical", dash.Breakdowns.ExpensesByVertical},
		{"Savings by Bucket", dash.Breakdowns.SavingsByBucket},
		{"Savings by Instrument", dash.Breakdowns.SavingsByInstrument},
	}
	for _, section := range sections {
		records = append(records, []string{}, []string{section.title, ""})
		for _, row := range section.rows {
			records = append(records, []string{row.Name, row.Amount.String()})
		}
	}

	for _, record := range records {
		if len(record) == 0 {
			record = []string{""}
		}
		if err := w.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
