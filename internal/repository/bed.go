package repository

import (
	"context"
	"fmt"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/model"
)

// CreateBed inserts a bed.  The caller must have verified room ownership.
func (s *queries) CreateBed(ctx context.Context, b *model.Bed) error {
	const q = `INSERT INTO beds (room_id, bed_number, monthly_price) VALUES (?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q, b.RoomID, b.BedNumber, b.MonthlyPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// BedForOwner retrieves a bed together with its PG id, enforcing
// ownership through rooms and pgs.
func (s *queries) BedForOwner(ctx context.Context, bedID, ownerID uint64) (*model.BedPlacement, error) {
	const q = `SELECT b.id, b.room_id, b.bed_number, b.is_occupied, b.monthly_price, r.pg_id
	           FROM beds b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN pgs p ON p.id = r.pg_id
	           WHERE b.id = ? AND p.owner_id = ?`
	var pl model.BedPlacement
	err := s.q.QueryRowContext(ctx, q, bedID, ownerID).
		Scan(&pl.Bed.ID, &pl.Bed.RoomID, &pl.Bed.BedNumber, &pl.Bed.IsOccupied, &pl.Bed.MonthlyPrice, &pl.PGID)
	if err != nil {
		return nil, notFound(err)
	}
	return &pl, nil
}

// ListBedsByRoom returns all beds of a room owned by the given owner.
func (s *queries) ListBedsByRoom(ctx context.Context, roomID, ownerID uint64) ([]model.Bed, error) {
	const q = `SELECT b.id, b.room_id, b.bed_number, b.is_occupied, b.monthly_price
	           FROM beds b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN pgs p ON p.id = r.pg_id
	           WHERE b.room_id = ? AND p.owner_id = ?
	           ORDER BY b.id`
	rows, err := s.q.QueryContext(ctx, q, roomID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Bed{}
	for rows.Next() {
		var b model.Bed
		if err := rows.Scan(&b.ID, &b.RoomID, &b.BedNumber, &b.IsOccupied, &b.MonthlyPrice); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetBedOccupied flips the occupancy flag.  Callers resolve ownership
// before mutating, so this targets the bed directly.
func (s *queries) SetBedOccupied(ctx context.Context, bedID uint64, occupied bool) error {
	const q = `UPDATE beds SET is_occupied = ? WHERE id = ?`
	res, err := s.q.ExecContext(ctx, q, occupied, bedID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing bed and for a no-op
		// update; confirm the bed exists before calling it missing.
		var one int
		if err := s.q.QueryRowContext(ctx, `SELECT 1 FROM beds WHERE id = ?`, bedID).Scan(&one); err != nil {
			return notFound(err)
		}
	}
	return nil
}

// UpdateBed changes a bed's number and monthly price while enforcing
// ownership.  Occupancy is not updatable here; it belongs to the
// tenant lifecycle.
func (s *queries) UpdateBed(ctx context.Context, bedID, ownerID uint64, bedNumber string, monthlyPrice float64) error {
	const q = `UPDATE beds b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN pgs p ON p.id = r.pg_id
	           SET b.bed_number = ?, b.monthly_price = ?
	           WHERE b.id = ? AND p.owner_id = ?`
	res, err := s.q.ExecContext(ctx, q, bedNumber, monthlyPrice, bedID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected counts changed rows, so re-submitting the
		// current values looks identical to a missing bed; confirm
		// the bed exists before calling it missing.
		if _, err := s.BedForOwner(ctx, bedID, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteBed removes an unoccupied bed.  Deleting an occupied bed would
// orphan its active tenant, so that case fails with a conflict.
func (s *queries) DeleteBed(ctx context.Context, bedID, ownerID uint64) error {
	const q = `DELETE b FROM beds b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN pgs p ON p.id = r.pg_id
	           WHERE b.id = ? AND p.owner_id = ? AND b.is_occupied = FALSE`
	res, err := s.q.ExecContext(ctx, q, bedID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.BedForOwner(ctx, bedID, ownerID); err != nil {
			return err
		}
		return fmt.Errorf("%w: bed is occupied", engine.ErrConflict)
	}
	return nil
}
