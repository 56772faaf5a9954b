package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/model"
)

// CreateRoom handles POST /v1/pgs/:id/rooms.
func (h *OwnerHandler) CreateRoom(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pgID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		RoomNumber string  `json:"room_number"`
		Floor      int32   `json:"floor"`
		Type       *string `json:"type"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	number := strings.TrimSpace(body.RoomNumber)
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number is required"})
	}

	// Resolve the PG through the owner filter before writing anything.
	if _, err := h.Store.PGForOwner(c.Request().Context(), pgID, ownerID); err != nil {
		return jsonError(c, err)
	}

	room := &model.Room{PGID: pgID, RoomNumber: number, Floor: body.Floor, Type: body.Type}
	if err := h.Store.CreateRoom(c.Request().Context(), room); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in this pg"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /v1/pgs/:id/rooms.
func (h *OwnerHandler) ListRooms(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pgID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Store.PGForOwner(c.Request().Context(), pgID, ownerID); err != nil {
		return jsonError(c, err)
	}
	items, err := h.Store.ListRoomsByPG(c.Request().Context(), pgID, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteRoom handles DELETE /v1/rooms/:id.  Beds, tenants and rent
// records under the room are removed with it.
func (h *OwnerHandler) DeleteRoom(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Store.DeleteRoomCascade(c.Request().Context(), id, ownerID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
