package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/queue"
)

// CheckInTenant handles POST /v1/tenants.  The engine creates the
// tenant, occupies the bed and opens the prorated first rent record in
// one transaction; afterwards a tenant.checked_in event goes out best
// effort.
func (h *OwnerHandler) CheckInTenant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		BedID           uint64  `json:"bed_id"`
		Name            string  `json:"name"`
		Phone           string  `json:"phone"`
		Email           *string `json:"email"`
		IDProof         *string `json:"id_proof"`
		CheckInDate     string  `json:"check_in_date"`
		SecurityDeposit float64 `json:"security_deposit"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var checkIn time.Time
	if body.CheckInDate != "" {
		checkIn, err = time.Parse("2006-01-02", body.CheckInDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_date must be YYYY-MM-DD"})
		}
	}

	ctx := c.Request().Context()
	tenant, err := h.Engine.CheckIn(ctx, ownerID, engine.CheckInInput{
		BedID:           body.BedID,
		Name:            body.Name,
		Phone:           body.Phone,
		Email:           body.Email,
		IDProof:         body.IDProof,
		CheckInDate:     checkIn,
		SecurityDeposit: body.SecurityDeposit,
	})
	if err != nil {
		return jsonError(c, err)
	}

	if placement, perr := h.Store.BedForOwner(ctx, tenant.BedID, ownerID); perr == nil {
		due, _ := engine.Prorate(tenant.CheckInDate, placement.Bed.MonthlyPrice)
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishTenantCheckedIn(pctx, queue.TenantCheckedInEvent{
				TenantID:    tenant.ID,
				TenantName:  tenant.Name,
				OwnerID:     ownerID,
				PGID:        tenant.PGID,
				BedID:       tenant.BedID,
				CheckInDate: tenant.CheckInDate.Format("2006-01-02"),
				MonthlyRent: placement.Bed.MonthlyPrice,
				FirstDue:    due,
			})
		}()
	}

	return c.JSON(http.StatusCreated, tenant)
}

// ListTenants handles GET /v1/tenants with an optional pg_id filter.
func (h *OwnerHandler) ListTenants(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var pgID *uint64
	if raw := c.QueryParam("pg_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pg_id"})
		}
		pgID = &id
	}
	offset, limit := pageParams(c)
	items, err := h.Store.ListTenantsByOwner(c.Request().Context(), ownerID, pgID, offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTenant handles GET /v1/tenants/:id.
func (h *OwnerHandler) GetTenant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	tenant, err := h.Store.TenantForOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// CheckOutTenant handles POST /v1/tenants/:id/checkout.  The bed is
// freed and the tenant becomes terminal; rent records stay as they
// are, unpaid ones included.
func (h *OwnerHandler) CheckOutTenant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	tenant, err := h.Engine.CheckOut(c.Request().Context(), ownerID, id)
	if err != nil {
		return jsonError(c, err)
	}

	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		out := ""
		if tenant.CheckOutDate != nil {
			out = tenant.CheckOutDate.Format("2006-01-02")
		}
		_ = queue.PublishTenantCheckedOut(pctx, queue.TenantCheckedOutEvent{
			TenantID:     tenant.ID,
			TenantName:   tenant.Name,
			OwnerID:      ownerID,
			BedID:        tenant.BedID,
			CheckOutDate: out,
		})
	}()

	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles DELETE /v1/tenants/:id.  Works on active and
// checked-out tenants alike; an active tenant's bed is freed and the
// tenant's rent history goes with the record.
func (h *OwnerHandler) DeleteTenant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Engine.DeleteTenant(c.Request().Context(), ownerID, id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
