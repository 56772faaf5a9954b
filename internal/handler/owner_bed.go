package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/model"
)

// CreateBed handles POST /v1/rooms/:id/beds.
func (h *OwnerHandler) CreateBed(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		BedNumber    string  `json:"bed_number"`
		MonthlyPrice float64 `json:"monthly_price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	number := strings.TrimSpace(body.BedNumber)
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_number is required"})
	}
	if body.MonthlyPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "monthly_price must not be negative"})
	}

	if _, err := h.Store.RoomForOwner(c.Request().Context(), roomID, ownerID); err != nil {
		return jsonError(c, err)
	}

	bed := &model.Bed{RoomID: roomID, BedNumber: number, MonthlyPrice: body.MonthlyPrice}
	if err := h.Store.CreateBed(c.Request().Context(), bed); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "bed number already exists in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create bed"})
	}
	return c.JSON(http.StatusCreated, bed)
}

// ListBeds handles GET /v1/rooms/:id/beds.
func (h *OwnerHandler) ListBeds(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Store.RoomForOwner(c.Request().Context(), roomID, ownerID); err != nil {
		return jsonError(c, err)
	}
	items, err := h.Store.ListBedsByRoom(c.Request().Context(), roomID, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateBed handles PUT /v1/beds/:id.  Only the label and price are
// updatable; occupancy is owned by the tenant lifecycle.
func (h *OwnerHandler) UpdateBed(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		BedNumber    string  `json:"bed_number"`
		MonthlyPrice float64 `json:"monthly_price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	number := strings.TrimSpace(body.BedNumber)
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_number is required"})
	}
	if body.MonthlyPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "monthly_price must not be negative"})
	}

	ctx := c.Request().Context()
	if err := h.Store.UpdateBed(ctx, id, ownerID, number, body.MonthlyPrice); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "bed number already exists in this room"})
		}
		return jsonError(c, err)
	}
	updated, err := h.Store.BedForOwner(ctx, id, ownerID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, updated.Bed)
}

// DeleteBed handles DELETE /v1/beds/:id.  An occupied bed cannot be
// deleted; the tenant has to check out first.
func (h *OwnerHandler) DeleteBed(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Store.DeleteBed(c.Request().Context(), id, ownerID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
