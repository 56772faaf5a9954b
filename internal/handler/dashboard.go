package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DashboardStats handles GET /v1/dashboard/stats?month=YYYY-MM.  The
// month defaults to the current one.
func (h *OwnerHandler) DashboardStats(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var month time.Time
	if raw := c.QueryParam("month"); raw != "" {
		month, err = parseMonth(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
		}
	}
	stats, err := h.Engine.ComputeStats(c.Request().Context(), ownerID, month)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
