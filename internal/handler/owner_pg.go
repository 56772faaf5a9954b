package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/model"
)

// CreatePG handles POST /v1/pgs.
func (h *OwnerHandler) CreatePG(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
		City    *string `json:"city"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	pg := &model.PG{OwnerID: ownerID, Name: name, Address: body.Address, City: body.City}
	if err := h.Store.CreatePG(c.Request().Context(), pg); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "pg name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create pg"})
	}
	return c.JSON(http.StatusCreated, pg)
}

// ListPGs handles GET /v1/pgs.
func (h *OwnerHandler) ListPGs(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	offset, limit := pageParams(c)
	items, err := h.Store.ListPGsByOwner(c.Request().Context(), ownerID, offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetPG handles GET /v1/pgs/:id.
func (h *OwnerHandler) GetPG(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	pg, err := h.Store.PGForOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, pg)
}

// DeletePG handles DELETE /v1/pgs/:id.  Everything under the property
// goes with it: rooms, beds, tenants and their rent records, all in
// one transaction.
func (h *OwnerHandler) DeletePG(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Store.DeletePGCascade(c.Request().Context(), id, ownerID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
