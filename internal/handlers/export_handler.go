package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "paisa/internal/errors"
	"paisa/internal/services"
)

// ExportHandler serves CSV downloads of a single month's data.
type ExportHandler struct {
	export services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(export services.ExportServicer) *ExportHandler {
	return &ExportHandler{export: export}
}

// ExportQuery selects the month and report to export.
type ExportQuery struct {
	Month string `form:"month" binding:"required,month_token"`
	Type  string `form:"type" binding:"required,export_type"`
}

// Export streams a CSV report for one month
// @Summary     Export month as CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       month query string true "Month to export (YYYY-MM)"
// @Param       type query string true "Report type" Enums(income, expenses, savings, summary)
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse "Invalid month or type"
// @Router      /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.export.Export(userID, query.Month, query.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", result.Data)
}
