package repository

import (
	"context"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

// InventoryCounts aggregates the owner's inventory in one round trip.
func (s *queries) InventoryCounts(ctx context.Context, ownerID uint64) (model.InventoryCounts, error) {
	const q = `SELECT
	             COUNT(DISTINCT p.id),
	             COUNT(DISTINCT r.id),
	             COUNT(DISTINCT b.id),
	             COUNT(DISTINCT CASE WHEN b.is_occupied THEN b.id END)
	           FROM pgs p
	           LEFT JOIN rooms r ON r.pg_id = p.id
	           LEFT JOIN beds b ON b.room_id = r.id
	           WHERE p.owner_id = ?`
	var c model.InventoryCounts
	err := s.q.QueryRowContext(ctx, q, ownerID).
		Scan(&c.PGs, &c.Rooms, &c.Beds, &c.OccupiedBeds)
	return c, err
}

// RentRecordsForMonth returns every ledger row of the owner for one
// normalized month, for dashboard aggregation.
func (s *queries) RentRecordsForMonth(ctx context.Context, ownerID uint64, month time.Time) ([]model.RentRecord, error) {
	const q = `SELECT ` + rentColumns + `
	           FROM rent_records rr
	           JOIN pgs p ON p.id = rr.pg_id
	           WHERE p.owner_id = ? AND rr.month = ?
	           ORDER BY rr.id`
	rows, err := s.q.QueryContext(ctx, q, ownerID, month)
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
