package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "paisa/internal/errors"
	"paisa/internal/month"
	"paisa/internal/services"
)

// DashboardHandler serves the aggregated dashboard view.
type DashboardHandler struct {
	dashboard services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// DashboardQuery holds the window selection. Either an explicit from/to pair
// or a trailing window of months ending at the current month.
type DashboardQuery struct {
	From   *string `form:"from" binding:"omitempty,month_token"`
	To     *string `form:"to" binding:"omitempty,month_token"`
	Months int     `form:"months" binding:"omitempty,min=1,max=60"`
}

// GetDashboard returns totals, monthly series and breakdowns for a window
// @Summary     Dashboard
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Window start (YYYY-MM)"
// @Param       to query string false "Window end (YYYY-MM)"
// @Param       months query int false "Trailing window size, used when from/to are absent (default 6)"
// @Success     200 {object} services.Dashboard
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var from, to string
	switch {
	case query.From != nil && query.To != nil:
		from, to = *query.From, *query.To
	case query.From != nil || query.To != nil:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to must be provided together"))
		return
	default:
		months := query.Months
		if months == 0 {
			months = 6
		}
		from, to = month.Lookback(months)
	}

	dash, err := h.dashboard.GetDashboard(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
