// Package handler defines the HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/repository"
)

// OwnerHandler bundles the store and rent engine for all owner-facing
// endpoints: inventory, tenants, rents and the dashboard.
type OwnerHandler struct {
	Store  *repository.Store
	Engine *engine.Engine
}

// NewOwnerHandler constructs an OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(store *repository.Store, eng *engine.Engine) *OwnerHandler {
	if store == nil || eng == nil {
		panic("nil dependency passed to NewOwnerHandler")
	}
	return &OwnerHandler{Store: store, Engine: eng}
}

// getUserID extracts the user_id set by the JWT middleware and
// converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// pageParams reads offset/limit query parameters with defaults.
func pageParams(c echo.Context) (offset, limit int) {
	limit = 50
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return offset, limit
}

// parseMonth accepts "2006-01" or a full "2006-01-02" date and
// normalizes to the first day of the month in UTC.
func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// jsonError maps the engine error taxonomy onto HTTP statuses.  The
// wrapped message is safe to surface for client errors; everything
// else collapses to a generic 500.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
