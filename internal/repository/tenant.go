package repository

import (
	"context"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

const tenantColumns = `t.id, t.pg_id, t.bed_id, t.name, t.phone, t.email, t.id_proof,
	t.check_in_date, t.check_out_date, t.status, t.security_deposit, t.created_at`

func scanTenant(row interface{ Scan(...any) error }) (*model.Tenant, error) {
	var t model.Tenant
	err := row.Scan(&t.ID, &t.PGID, &t.BedID, &t.Name, &t.Phone, &t.Email, &t.IDProof,
		&t.CheckInDate, &t.CheckOutDate, &t.Status, &t.SecurityDeposit, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTenant inserts a tenant row.  On success the ID is populated.
func (s *queries) CreateTenant(ctx context.Context, t *model.Tenant) error {
	const q = `INSERT INTO tenants
	           (pg_id, bed_id, name, phone, email, id_proof, check_in_date, status, security_deposit)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q,
		t.PGID, t.BedID, t.Name, t.Phone, t.Email, t.IDProof, t.CheckInDate, t.Status, t.SecurityDeposit)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// TenantForOwner retrieves a tenant while enforcing ownership via the PG.
func (s *queries) TenantForOwner(ctx context.Context, tenantID, ownerID uint64) (*model.Tenant, error) {
	const q = `SELECT ` + tenantColumns + `
	           FROM tenants t
	           JOIN pgs p ON p.id = t.pg_id
	           WHERE t.id = ? AND p.owner_id = ?`
	t, err := scanTenant(s.q.QueryRowContext(ctx, q, tenantID, ownerID))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// MarkTenantCheckedOut sets the terminal state and the checkout date.
func (s *queries) MarkTenantCheckedOut(ctx context.Context, tenantID uint64, checkOut time.Time) error {
	const q = `UPDATE tenants SET status = ?, check_out_date = ? WHERE id = ?`
	_, err := s.q.ExecContext(ctx, q, model.TenantCheckedOut, checkOut, tenantID)
	return err
}

// DeleteTenant removes a tenant and its rent records.
func (s *queries) DeleteTenant(ctx context.Context, tenantID uint64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM rent_records WHERE tenant_id = ?`, tenantID); err != nil {
		return err
	}
	_, err := s.q.ExecContext(ctx, `DELETE FROM tenants WHERE id = ?`, tenantID)
	return err
}

// ActiveTenantBillings returns every active tenant of the owner with
// the monthly price of the occupied bed, for the rent batch.
func (s *queries) ActiveTenantBillings(ctx context.Context, ownerID uint64) ([]model.TenantBilling, error) {
	const q = `SELECT t.id, t.pg_id, t.bed_id, b.monthly_price
	           FROM tenants t
	           JOIN pgs p ON p.id = t.pg_id
	           JOIN beds b ON b.id = t.bed_id
	           WHERE p.owner_id = ? AND t.status = ?
	           ORDER BY t.id`
	rows, err := s.q.QueryContext(ctx, q, ownerID, model.TenantActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TenantBilling{}
	for rows.Next() {
		var b model.TenantBilling
		if err := rows.Scan(&b.TenantID, &b.PGID, &b.BedID, &b.MonthlyPrice); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListTenantsByOwner returns the owner's tenants, optionally filtered
// to one PG, newest first.
func (s *queries) ListTenantsByOwner(ctx context.Context, ownerID uint64, pgID *uint64, offset, limit int) ([]model.Tenant, error) {
	q := `SELECT ` + tenantColumns + `
	      FROM tenants t
	      JOIN pgs p ON p.id = t.pg_id
	      WHERE p.owner_id = ?`
	args := []any{ownerID}
	if pgID != nil {
		q += ` AND t.pg_id = ?`
		args = append(args, *pgID)
	}
	q += ` ORDER BY t.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
