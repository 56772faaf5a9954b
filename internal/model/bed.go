package model

// Bed is the rentable unit of the inventory.  IsOccupied must be true
// exactly when an active tenant currently holds the bed; every code
// path that touches either side keeps the two in sync inside one
// transaction.  Corresponds to a row in the `beds` table.
type Bed struct {
	ID           uint64  `json:"id"`            // beds.id
	RoomID       uint64  `json:"room_id"`       // beds.room_id
	BedNumber    string  `json:"bed_number"`    // beds.bed_number
	IsOccupied   bool    `json:"is_occupied"`   // beds.is_occupied
	MonthlyPrice float64 `json:"monthly_price"` // beds.monthly_price
}

// BedPlacement is a bed together with the PG it ultimately belongs to,
// resolved through the room.  Check-in needs the PG id to denormalize
// onto the tenant and its rent records.
type BedPlacement struct {
	Bed  Bed    `json:"bed"`
	PGID uint64 `json:"pg_id"`
}
