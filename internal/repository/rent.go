package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/model"
)

const rentColumns = `rr.id, rr.tenant_id, rr.pg_id, rr.month, rr.amount_due,
	rr.amount_paid, rr.status, rr.payment_date, rr.created_at`

func scanRentRecord(row interface{ Scan(...any) error }) (*model.RentRecord, error) {
	var r model.RentRecord
	err := row.Scan(&r.ID, &r.TenantID, &r.PGID, &r.Month, &r.AmountDue,
		&r.AmountPaid, &r.Status, &r.PaymentDate, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRentRecord inserts a ledger row.  The unique (tenant_id, month)
// key backs the batch pre-check; a duplicate racing past it comes back
// as a conflict rather than a second record.
func (s *queries) CreateRentRecord(ctx context.Context, r *model.RentRecord) error {
	const q = `INSERT INTO rent_records (tenant_id, pg_id, month, amount_due, amount_paid, status, payment_date)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q,
		r.TenantID, r.PGID, r.Month, r.AmountDue, r.AmountPaid, r.Status, r.PaymentDate)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: rent record already exists for this month", engine.ErrConflict)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return nil
}

// RentRecordExists reports whether a (tenant, month) ledger row exists.
func (s *queries) RentRecordExists(ctx context.Context, tenantID uint64, month time.Time) (bool, error) {
	const q = `SELECT COUNT(*) FROM rent_records WHERE tenant_id = ? AND month = ?`
	var n int
	if err := s.q.QueryRowContext(ctx, q, tenantID, month).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// RentRecordForOwner retrieves a ledger row while enforcing ownership
// via the denormalized PG reference.
func (s *queries) RentRecordForOwner(ctx context.Context, rentID, ownerID uint64) (*model.RentRecord, error) {
	const q = `SELECT ` + rentColumns + `
	           FROM rent_records rr
	           JOIN pgs p ON p.id = rr.pg_id
	           WHERE rr.id = ? AND p.owner_id = ?`
	r, err := scanRentRecord(s.q.QueryRowContext(ctx, q, rentID, ownerID))
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// UpdateRentRecord persists payment fields.  amount_due is immutable
// after creation and deliberately not part of the statement.
func (s *queries) UpdateRentRecord(ctx context.Context, r *model.RentRecord) error {
	const q = `UPDATE rent_records SET amount_paid = ?, status = ?, payment_date = ? WHERE id = ?`
	_, err := s.q.ExecContext(ctx, q, r.AmountPaid, r.Status, r.PaymentDate, r.ID)
	return err
}

// ListRentRecords returns the owner's ledger rows with optional month
// and status filters, newest month first.
func (s *queries) ListRentRecords(ctx context.Context, ownerID uint64, month *time.Time, status *model.RentStatus, offset, limit int) ([]model.RentRecord, error) {
	q := `SELECT ` + rentColumns + `
	      FROM rent_records rr
	      JOIN pgs p ON p.id = rr.pg_id
	      WHERE p.owner_id = ?`
	args := []any{ownerID}
	if month != nil {
		q += ` AND rr.month = ?`
		args = append(args, *month)
	}
	if status != nil {
		q += ` AND rr.status = ?`
		args = append(args, *status)
	}
	q += ` ORDER BY rr.month DESC, rr.id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RentRecord{}
	for rows.Next() {
		r, err := scanRentRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
