package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/model"
)

// ListRents handles GET /v1/rents with optional month (YYYY-MM) and
// status filters.
func (h *OwnerHandler) ListRents(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var month *time.Time
	if raw := c.QueryParam("month"); raw != "" {
		m, err := parseMonth(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
		}
		month = &m
	}
	var status *model.RentStatus
	if raw := c.QueryParam("status"); raw != "" {
		st, err := model.ParseRentStatus(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, partial or paid"})
		}
		status = &st
	}

	offset, limit := pageParams(c)
	items, err := h.Store.ListRentRecords(c.Request().Context(), ownerID, month, status, offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GenerateRents handles POST /v1/rents/generate?month=YYYY-MM.  One
// pending record per active tenant at the bed's full price; tenants
// already billed for the month are skipped, so re-running is safe.
func (h *OwnerHandler) GenerateRents(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var month time.Time // zero means current month
	if raw := c.QueryParam("month"); raw != "" {
		month, err = parseMonth(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
		}
	}
	created, err := h.Engine.GenerateRentForMonth(c.Request().Context(), ownerID, month)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"created": created})
}

// UpdateRent handles PUT /v1/rents/:id.  Records a payment: any of
// status, amount_paid and payment_date may be present.
func (h *OwnerHandler) UpdateRent(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status      *string  `json:"status"`
		AmountPaid  *float64 `json:"amount_paid"`
		PaymentDate *string  `json:"payment_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var upd engine.PaymentUpdate
	if body.Status != nil {
		st, err := model.ParseRentStatus(*body.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, partial or paid"})
		}
		upd.Status = &st
	}
	upd.AmountPaid = body.AmountPaid
	if body.PaymentDate != nil {
		d, err := time.Parse("2006-01-02", *body.PaymentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_date must be YYYY-MM-DD"})
		}
		upd.PaymentDate = &d
	}

	rec, err := h.Engine.RecordPayment(c.Request().Context(), ownerID, id, upd)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
