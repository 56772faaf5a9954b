package repository

import (
	"context"

	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/model"
)

// CreatePG inserts a property.  On success the ID field is populated.
func (s *queries) CreatePG(ctx context.Context, p *model.PG) error {
	const q = `INSERT INTO pgs (owner_id, name, address, city) VALUES (?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q, p.OwnerID, p.Name, p.Address, p.City)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const qSelect = `SELECT created_at FROM pgs WHERE id = ?`
	return s.q.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt)
}

// PGForOwner retrieves a property only if it belongs to the owner.
func (s *queries) PGForOwner(ctx context.Context, pgID, ownerID uint64) (*model.PG, error) {
	const q = `SELECT id, owner_id, name, address, city, created_at
	           FROM pgs WHERE id = ? AND owner_id = ?`
	var p model.PG
	err := s.q.QueryRowContext(ctx, q, pgID, ownerID).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.City, &p.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListPGsByOwner returns the owner's properties ordered by id.
func (s *queries) ListPGsByOwner(ctx context.Context, ownerID uint64, offset, limit int) ([]model.PG, error) {
	const q = `SELECT id, owner_id, name, address, city, created_at
	           FROM pgs WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`
	rows, err := s.q.QueryContext(ctx, q, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PG{}
	for rows.Next() {
		var p model.PG
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.City, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePGCascade removes a property and everything under it in FK
// order: rent records, tenants, beds, rooms, then the PG itself.
// Runs as one transaction on the Store.
func (s *Store) DeletePGCascade(ctx context.Context, pgID, ownerID uint64) error {
	return s.WithinTx(ctx, func(tx engine.Tx) error {
		qs := tx.(*queries)
		if _, err := qs.PGForOwner(ctx, pgID, ownerID); err != nil {
			return err
		}
		steps := []string{
			`DELETE FROM rent_records WHERE pg_id = ?`,
			`DELETE FROM tenants WHERE pg_id = ?`,
			`DELETE b FROM beds b JOIN rooms r ON r.id = b.room_id WHERE r.pg_id = ?`,
			`DELETE FROM rooms WHERE pg_id = ?`,
			`DELETE FROM pgs WHERE id = ?`,
		}
		for _, q := range steps {
			if _, err := qs.q.ExecContext(ctx, q, pgID); err != nil {
				return err
			}
		}
		return nil
	})
}
