package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// SavingsHandler handles savings ledger requests.
type SavingsHandler struct {
	entries services.SavingsEntryServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(entries services.SavingsEntryServicer) *SavingsHandler {
	return &SavingsHandler{entries: entries}
}

// CreateSavingsEntryRequest represents the payload for recording a contribution.
type CreateSavingsEntryRequest struct {
	InstrumentID string          `json:"instrument_id" binding:"required,uuid"`
	Month        string          `json:"month" binding:"required,month_token"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Note         string          `json:"note" binding:"max=500"`
}

// UpdateSavingsEntryRequest represents the payload for updating a contribution.
type UpdateSavingsEntryRequest struct {
	InstrumentID *string          `json:"instrument_id" binding:"omitempty,uuid"`
	Month        *string          `json:"month" binding:"omitempty,month_token"`
	Amount       *decimal.Decimal `json:"amount"`
	Note         *string          `json:"note" binding:"omitempty,max=500"`
}

// CreateEntry records a savings contribution
// @Summary     Record savings contribution
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingsEntryRequest true "Savings entry"
// @Success     201 {object} models.SavingsEntry
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Instrument not found"
// @Router      /savings [post]
func (h *SavingsHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingsEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entries.Create(userID, req.InstrumentID, req.Month, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListEntries lists savings contributions
// @Summary     List savings contributions
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Filter to one month (YYYY-MM)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.SavingsEntry]
// @Router      /savings [get]
func (h *SavingsHandler) ListEntries(c *gin.Context) {
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

// GetEntry fetches a single savings contribution
// @Summary     Get savings contribution
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.SavingsEntry
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /savings/{id} [get]
func (h *SavingsHandler) GetEntry(c *gin.Context) {
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

// UpdateEntry updates a savings contribution
// @Summary     Update savings contribution
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Param       request body UpdateSavingsEntryRequest true "Fields to change"
// @Success     200 {object} models.SavingsEntry
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /savings/{id} [put]
func (h *SavingsHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSavingsEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entries.Update(userID, c.Param("id"), services.EntryUpdate{
		CategoryID: req.InstrumentID,
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

// DeleteEntry deletes a savings contribution
// @Summary     Delete savings contribution
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /savings/{id} [delete]
func (h *SavingsHandler) DeleteEntry(c *gin.Context) {
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
