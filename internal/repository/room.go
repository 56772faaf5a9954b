package repository

import (
	"context"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/model"
)

// CreateRoom inserts a room.  The caller must have verified that the
// target PG belongs to the requesting owner.
func (s *queries) CreateRoom(ctx context.Context, r *model.Room) error {
	const q = `INSERT INTO rooms (pg_id, room_number, floor, type) VALUES (?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q, r.PGID, r.RoomNumber, r.Floor, r.Type)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return nil
}

// RoomForOwner retrieves a room while enforcing ownership via its PG.
func (s *queries) RoomForOwner(ctx context.Context, roomID, ownerID uint64) (*model.Room, error) {
	const q = `SELECT r.id, r.pg_id, r.room_number, r.floor, r.type
	           FROM rooms r
	           JOIN pgs p ON p.id = r.pg_id
	           WHERE r.id = ? AND p.owner_id = ?`
	var r model.Room
	err := s.q.QueryRowContext(ctx, q, roomID, ownerID).
		Scan(&r.ID, &r.PGID, &r.RoomNumber, &r.Floor, &r.Type)
	if err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

// ListRoomsByPG returns all rooms of a PG owned by the given owner.
func (s *queries) ListRoomsByPG(ctx context.Context, pgID, ownerID uint64) ([]model.Room, error) {
	const q = `SELECT r.id, r.pg_id, r.room_number, r.floor, r.type
	           FROM rooms r
	           JOIN pgs p ON p.id = r.pg_id
	           WHERE r.pg_id = ? AND p.owner_id = ?
	           ORDER BY r.id`
	rows, err := s.q.QueryContext(ctx, q, pgID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.PGID, &r.RoomNumber, &r.Floor, &r.Type); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRoomCascade removes a room, its beds, and any tenants and rent
// records attached to those beds, in one transaction.
func (s *Store) DeleteRoomCascade(ctx context.Context, roomID, ownerID uint64) error {
	return s.WithinTx(ctx, func(tx engine.Tx) error {
		qs := tx.(*queries)
		if _, err := qs.RoomForOwner(ctx, roomID, ownerID); err != nil {
			return err
		}
		steps := []string{
			`DELETE rr FROM rent_records rr JOIN tenants t ON t.id = rr.tenant_id
			 JOIN beds b ON b.id = t.bed_id WHERE b.room_id = ?`,
			`DELETE t FROM tenants t JOIN beds b ON b.id = t.bed_id WHERE b.room_id = ?`,
			`DELETE FROM beds WHERE room_id = ?`,
			`DELETE FROM rooms WHERE id = ?`,
		}
		for _, q := range steps {
			if _, err := qs.q.ExecContext(ctx, q, roomID); err != nil {
				return err
			}
		}
		return nil
	})
}
