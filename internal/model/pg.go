package model

import "time"

// PG represents a paying-guest property owned by a user.  A PG
// contains rooms, which in turn contain beds.  This struct
// corresponds to a row in the `pgs` table.
type PG struct {
	ID        uint64    `json:"id"`         // pgs.id
	OwnerID   uint64    `json:"owner_id"`   // pgs.owner_id
	Name      string    `json:"name"`       // pgs.name
	Address   *string   `json:"address"`    // pgs.address (nullable)
	City      *string   `json:"city"`       // pgs.city (nullable)
	CreatedAt time.Time `json:"created_at"` // pgs.created_at
}
