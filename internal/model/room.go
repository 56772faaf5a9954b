package model

// Room represents a room inside a PG.  The PG reference is fixed at
// creation time; rooms never move between properties.  Corresponds
// to a row in the `rooms` table.
type Room struct {
	ID         uint64  `json:"id"`          // rooms.id
	PGID       uint64  `json:"pg_id"`       // rooms.pg_id
	RoomNumber string  `json:"room_number"` // rooms.room_number
	Floor      int32   `json:"floor"`       // rooms.floor
	Type       *string `json:"type"`        // rooms.type (Single, Double, ...; nullable)
}
