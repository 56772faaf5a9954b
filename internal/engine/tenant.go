package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

// CheckInInput carries the tenant details for a check-in.  The bed
// assignment is mandatory; the PG is derived from the bed.
type CheckInInput struct {
	BedID           uint64
	Name            string
	Phone           string
	Email           *string
	IDProof         *string
	CheckInDate     time.Time
	SecurityDeposit float64
}

// CheckIn places a tenant on a bed.  In one transaction it creates the
// tenant, marks the bed occupied and opens the tenant's first rent
// record, prorated when the check-in date is not the 1st.  A bed the
// owner cannot see yields ErrNotFound; an occupied bed ErrConflict.
// On failure nothing is persisted: no tenant, no occupancy flip, no
// orphan rent record.
func (e *Engine) CheckIn(ctx context.Context, ownerID uint64, in CheckInInput) (*model.Tenant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	switch {
	case in.BedID == 0:
		return nil, fmt.Errorf("%w: bed_id is required", ErrInvalidInput)
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case in.Phone == "":
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	case in.CheckInDate.IsZero():
		return nil, fmt.Errorf("%w: check_in_date is required", ErrInvalidInput)
	case in.SecurityDeposit < 0:
		return nil, fmt.Errorf("%w: security_deposit must not be negative", ErrInvalidInput)
	}
	checkIn := time.Date(in.CheckInDate.Year(), in.CheckInDate.Month(), in.CheckInDate.Day(), 0, 0, 0, 0, time.UTC)

	var tenant *model.Tenant
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		placement, err := tx.BedForOwner(ctx, in.BedID, ownerID)
		if err != nil {
			return err
		}
		if placement.Bed.IsOccupied {
			return fmt.Errorf("%w: bed is already occupied", ErrConflict)
		}

		due, err := Prorate(checkIn, placement.Bed.MonthlyPrice)
		if err != nil {
			return err
		}

		t := &model.Tenant{
			PGID:            placement.PGID,
			BedID:           placement.Bed.ID,
			Name:            in.Name,
			Phone:           in.Phone,
			Email:           in.Email,
			IDProof:         in.IDProof,
			CheckInDate:     checkIn,
			Status:          model.TenantActive,
			SecurityDeposit: in.SecurityDeposit,
		}
		if err := tx.CreateTenant(ctx, t); err != nil {
			return err
		}
		if err := tx.SetBedOccupied(ctx, placement.Bed.ID, true); err != nil {
			return err
		}
		if err := tx.CreateRentRecord(ctx, &model.RentRecord{
			TenantID:  t.ID,
			PGID:      placement.PGID,
			Month:     monthStart(checkIn),
			AmountDue: due,
			Status:    model.RentPending,
		}); err != nil {
			return err
		}
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// CheckOut ends a tenancy.  The tenant moves to checked_out with the
// clock's current date and the bed is freed in the same transaction.
// Checking out twice is ErrConflict; existing rent records are left
// untouched.
func (e *Engine) CheckOut(ctx context.Context, ownerID, tenantID uint64) (*model.Tenant, error) {
	var tenant *model.Tenant
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		t, err := tx.TenantForOwner(ctx, tenantID, ownerID)
		if err != nil {
			return err
		}
		if t.Status == model.TenantCheckedOut {
			return fmt.Errorf("%w: tenant already checked out", ErrConflict)
		}
		out := e.today()
		if err := tx.MarkTenantCheckedOut(ctx, t.ID, out); err != nil {
			return err
		}
		if err := tx.SetBedOccupied(ctx, t.BedID, false); err != nil {
			return err
		}
		t.Status = model.TenantCheckedOut
		t.CheckOutDate = &out
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// DeleteTenant removes a tenant entirely.  When the tenant is still
// active its bed is freed first, inside the same transaction, so the
// occupancy invariant holds at every observable point.  The tenant's
// rent records go with it.
func (e *Engine) DeleteTenant(ctx context.Context, ownerID, tenantID uint64) error {
	return e.store.WithinTx(ctx, func(tx Tx) error {
		t, err := tx.TenantForOwner(ctx, tenantID, ownerID)
		if err != nil {
			return err
		}
		if t.Status == model.TenantActive {
			if err := tx.SetBedOccupied(ctx, t.BedID, false); err != nil {
				return err
			}
		}
		return tx.DeleteTenant(ctx, t.ID)
	})
}
