package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// ExpenseHandler handles expense ledger requests.
type ExpenseHandler struct {
	entries services.ExpenseEntryServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(entries services.ExpenseEntryServicer) *ExpenseHandler {
	return &ExpenseHandler{entries: entries}
}

// CreateExpenseEntryRequest represents the payload for recording an expense.
type CreateExpenseEntryRequest struct {
	VerticalID string          `json:"vertical_id" binding:"required,uuid"`
	Month      string          `json:"month" binding:"required,month_token"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Note       string          `json:"note" binding:"max=500"`
}

// UpdateExpenseEntryRequest represents the payload for updating an expense entry.
type UpdateExpenseEntryRequest struct {
	VerticalID *string          `json:"vertical_id" binding:"omitempty,uuid"`
	Month      *string          `json:"month" binding:"omitempty,month_token"`
	Amount     *decimal.Decimal `json:"amount"`
	Note       *string          `json:"note" binding:"omitempty,max=500"`
}

// CreateEntry records an expense entry
// @Summary     Record expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseEntryRequest true "Expense entry"
// @Success     201 {object} models.ExpenseEntry
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Vertical not found"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entries.Create(userID, req.VerticalID, req.Month, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListEntries lists expense entries
// @Summary     List expense entries
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Filter to one month (YYYY-MM)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.ExpenseEntry]
// @Router      /expenses [get]
func (h *ExpenseHandler) ListEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListEntriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.entries.List(userID, query.Month, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEntry fetches a single expense entry
// @Summary     Get expense entry
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.ExpenseEntry
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entries.GetByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateEntry updates an expense entry
// @Summary     Update expense entry
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Param       request body UpdateExpenseEntryRequest true "Fields to change"
// @Success     200 {object} models.ExpenseEntry
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entries.Update(userID, c.Param("id"), services.EntryUpdate{
		CategoryID: req.VerticalID,
		Month:      req.Month,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry deletes an expense entry
// @Summary     Delete expense entry
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entries.Delete(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
