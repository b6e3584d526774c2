package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// IncomeHandler handles income ledger requests.
type IncomeHandler struct {
	entries services.IncomeEntryServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(entries services.IncomeEntryServicer) *IncomeHandler {
	return &IncomeHandler{entries: entries}
}

// CreateIncomeEntryRequest represents the payload for recording income.
type CreateIncomeEntryRequest struct {
	SourceID string          `json:"source_id" binding:"required,uuid"`
	Month    string          `json:"month" binding:"required,month_token"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note" binding:"max=500"`
}

// UpdateIncomeEntryRequest represents the payload for updating an income entry.
type UpdateIncomeEntryRequest struct {
	SourceID *string          `json:"source_id" binding:"omitempty,uuid"`
	Month    *string          `json:"month" binding:"omitempty,month_token"`
	Amount   *decimal.Decimal `json:"amount"`
	Note     *string          `json:"note" binding:"omitempty,max=500"`
}

// ListEntriesQuery holds the optional month filter for ledger listings.
type ListEntriesQuery struct {
	Month *string `form:"month" binding:"omitempty,month_token"`
}

// CreateEntry records an income entry
// @Summary     Record income
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeEntryRequest true "Income entry"
// @Success     201 {object} models.IncomeEntry
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Source not found"
// @Router      /income [post]
func (h *IncomeHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entries.Create(userID, req.SourceID, req.Month, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListEntries lists income entries
// @Summary     List income entries
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Filter to one month (YYYY-MM)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.IncomeEntry]
// @Router      /income [get]
func (h *IncomeHandler) ListEntries(c *gin.Context) {
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

// GetEntry fetches a single income entry
// @Summary     Get income entry
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.IncomeEntry
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /income/{id} [get]
func (h *IncomeHandler) GetEntry(c *gin.Context) {
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

// UpdateEntry updates an income entry
// @Summary     Update income entry
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Param       request body UpdateIncomeEntryRequest true "Fields to change"
// @Success     200 {object} models.IncomeEntry
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /income/{id} [put]
func (h *IncomeHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entries.Update(userID, c.Param("id"), services.EntryUpdate{
		CategoryID: req.SourceID,
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

// DeleteEntry deletes an income entry
// @Summary     Delete income entry
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteEntry(c *gin.Context) {
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
