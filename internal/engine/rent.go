package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

// GenerateRentForMonth creates the month's pending rent record for
// every active tenant of the owner that does not have one yet, at the
// bed's full monthly price.  Proration never applies here; it is a
// check-in concern only.  A zero month means the clock's current
// month.  The call is idempotent: a second run for the same month
// creates nothing and returns 0.  The unique (tenant_id, month) key in
// the store backs the pre-check under concurrent invocations.
func (e *Engine) GenerateRentForMonth(ctx context.Context, ownerID uint64, month time.Time) (int, error) {
	if month.IsZero() {
		month = e.today()
	}
	month = monthStart(month)

	created := 0
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		billings, err := tx.ActiveTenantBillings(ctx, ownerID)
		if err != nil {
			return err
		}
		for _, b := range billings {
			exists, err := tx.RentRecordExists(ctx, b.TenantID, month)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := tx.CreateRentRecord(ctx, &model.RentRecord{
				TenantID:  b.TenantID,
				PGID:      b.PGID,
				Month:     month,
				AmountDue: b.MonthlyPrice,
				Status:    model.RentPending,
			}); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// PaymentUpdate is a partial update of a rent record.  Nil fields are
// left unchanged.
type PaymentUpdate struct {
	Status      *model.RentStatus
	AmountPaid  *float64
	PaymentDate *time.Time
}

// RecordPayment applies a payment update to a rent record.  Setting
// status to paid without an explicit amount_paid fills in the full
// amount_due; an explicit amount always wins, over- and underpayment
// included.  When a payment lands without a payment_date and the
// record has none, the clock's current date is used.  No transition
// graph is enforced between statuses.  Bed and tenant state are never
// touched.
func (e *Engine) RecordPayment(ctx context.Context, ownerID, rentID uint64, upd PaymentUpdate) (*model.RentRecord, error) {
	if upd.Status != nil {
		if _, err := model.ParseRentStatus(string(*upd.Status)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	var rec *model.RentRecord
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		r, err := tx.RentRecordForOwner(ctx, rentID, ownerID)
		if err != nil {
			return err
		}
		if upd.Status != nil {
			r.Status = *upd.Status
			if *upd.Status == model.RentPaid && upd.AmountPaid == nil {
				r.AmountPaid = r.AmountDue
			}
		}
		if upd.AmountPaid != nil {
			r.AmountPaid = *upd.AmountPaid
		}
		switch {
		case upd.PaymentDate != nil:
			d := time.Date(upd.PaymentDate.Year(), upd.PaymentDate.Month(), upd.PaymentDate.Day(), 0, 0, 0, 0, time.UTC)
			r.PaymentDate = &d
		case (upd.Status != nil || upd.AmountPaid != nil) && r.PaymentDate == nil:
			d := e.today()
			r.PaymentDate = &d
		}
		if err := tx.UpdateRentRecord(ctx, r); err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
