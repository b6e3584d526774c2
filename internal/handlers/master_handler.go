package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/services"
)

// MasterHandler handles the category master data: user-owned income sources
// and expense verticals, and the globally shared savings instruments.
type MasterHandler struct {
	sources     services.IncomeSourceServicer
	verticals   services.ExpenseVerticalServicer
	instruments services.SavingsInstrumentServicer
}

// NewMasterHandler creates a new MasterHandler.
func NewMasterHandler(
	sources services.IncomeSourceServicer,
	verticals services.ExpenseVerticalServicer,
	instruments services.SavingsInstrumentServicer,
) *MasterHandler {
	return &MasterHandler{sources: sources, verticals: verticals, instruments: instruments}
}

// CategoryRequest is the payload for creating or renaming a user-owned category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// InstrumentRequest is the payload for creating a shared savings instrument.
type InstrumentRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Bucket string `json:"bucket" binding:"required,instrument_bucket"`
}

// InstrumentUpdateRequest renames a shared savings instrument within its bucket.
type InstrumentUpdateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// --- income sources ---

// CreateIncomeSource adds an income source
// @Summary     Create income source
// @Tags        masters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Source name"
// @Success     201 {object} models.IncomeSource
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /sources [post]
func (h *MasterHandler) CreateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.sources.Create(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, source)
}

// ListIncomeSources lists the user's income sources
// @Summary     List income sources
// @Tags        masters
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.IncomeSource
// @Router      /sources [get]
func (h *MasterHandler) ListIncomeSources(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sources, err := h.sources.List(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sources})
}

// UpdateIncomeSource renames an income source
// @Summary     Rename income source
// @Tags        masters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Source ID"
// @Param       request body CategoryRequest true "New name"
// @Success     200 {object} models.IncomeSource
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sources/{id} [put]
func (h *MasterHandler) UpdateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.sources.Update(userID, c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, source)
}

// DeleteIncomeSource deletes an income source
// @Summary     Delete income source
// @Tags        masters
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Source ID"
// @Success     200 {object} map[string]string
// @Failure     409 {object} ErrorResponse "Source still referenced by entries"
// @Router      /sources/{id} [delete]
func (h *MasterHandler) DeleteIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sources.Delete(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Source deleted"})
}

// --- expense verticals ---

// CreateExpenseVertical adds an expense vertical
// @Summary     Create expense vertical
// @Tags        masters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Vertical name"
// @Success     201 {object} models.ExpenseVertical
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /verticals [post]
func (h *MasterHandler) CreateExpenseVertical(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	vertical, err := h.verticals.Create(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vertical)
}

// ListExpenseVerticals lists the user's expense verticals
// @Summary     List expense verticals
// @Tags        masters
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.ExpenseVertical
// @Router      /verticals [get]
func (h *MasterHandler) ListExpenseVerticals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	verticals, err := h.verticals.List(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": verticals})
}

// UpdateExpenseVertical renames an expense vertical
// @Summary     Rename expense vertical
// @Tags        masters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vertical ID"
// @Param       request body CategoryRequest true "New name"
// @Success     200 {object} models.ExpenseVertical
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /verticals/{id} [put]
func (h *MasterHandler) UpdateExpenseVertical(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	vertical, err := h.verticals.Update(userID, c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, vertical)
}

// DeleteExpenseVertical deletes an expense vertical
// @Summary     Delete expense vertical
// @Tags        masters
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vertical ID"
// @Success     200 {object} map[string]string
// @Failure     409 {object} ErrorResponse "Vertical still referenced by entries"
// @Router      /verticals/{id} [delete]
func (h *MasterHandler) DeleteExpenseVertical(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.verticals.Delete(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vertical deleted"})
}

// --- savings instruments (shared) ---

// CreateSavingsInstrument adds a shared savings instrument
// @Summary     Create savings instrument
// @Tags        masters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InstrumentRequest true "Instrument name and bucket"
// @Success     201 {object} models.SavingsInstrument
// @Failure     409 {object} ErrorResponse "Duplicate name in bucket"
// @Router      /instruments [post]
func (h *MasterHandler) CreateSavingsInstrument(c *gin.Context) {
	var req InstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	instrument, err := h.instruments.Create(req.Name, models.InstrumentBucket(req.Bucket))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instrument)
}

// ListSavingsInstruments lists shared savings instruments
// @Summary     List savings instruments
// @Tags        masters
// @Produce     json
// @Security    BearerAuth
// @Param       bucket query string false "Filter by bucket"
// @Success     200 {array} models.SavingsInstrument
// @Router      /instruments [get]
func (h *MasterHandler) ListSavingsInstruments(c *gin.Context) {
	var bucket *models.InstrumentBucket
	if s := c.Query("bucket"); s != "" {
		b := models.InstrumentBucket(s)
		switch b {
		case models.BucketFDRD, models.BucketNPSPPF, models.BucketStocksETFs, models.BucketMF:
			bucket = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown bucket"))
			return
		}
	}

	instruments, err := h.instruments.List(bucket)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": instruments})
}

// UpdateSavingsInstrument renames a shared savings instrument
// @Summary     Rename savings instrument
// @Tags        masters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Instrument ID"
// @Param       request body InstrumentUpdateRequest true "New name"
// @Success     200 {object} models.SavingsInstrument
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /instruments/{id} [put]
func (h *MasterHandler) UpdateSavingsInstrument(c *gin.Context) {
	var req InstrumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	instrument, err := h.instruments.Update(c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, instrument)
}

// DeleteSavingsInstrument deletes a shared savings instrument
// @Summary     Delete savings instrument
// @Tags        masters
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Instrument ID"
// @Success     200 {object} map[string]string
// @Failure     409 {object} ErrorResponse "Instrument still referenced by entries"
// @Router      /instruments/{id} [delete]
func (h *MasterHandler) DeleteSavingsInstrument(c *gin.Context) {
	if err := h.instruments.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Instrument deleted"})
}
