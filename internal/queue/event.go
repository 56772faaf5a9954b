// Package queue defines the payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// TenantCheckedInEvent is published after a tenant is checked in and the
// first prorated rent record is created.  It carries enough context for
// downstream consumers to log or notify without querying the database.
type TenantCheckedInEvent struct {
	TenantID    uint64  `json:"tenant_id"`
	TenantName  string  `json:"tenant_name"`
	OwnerID     uint64  `json:"owner_id"`
	PGID        uint64  `json:"pg_id"`
	BedID       uint64  `json:"bed_id"`
	CheckInDate string  `json:"check_in_date"`
	MonthlyRent float64 `json:"monthly_rent"`
	FirstDue    float64 `json:"first_month_due"`
}

// TenantCheckedOutEvent is published after a tenant checks out and the
// bed is released.
type TenantCheckedOutEvent struct {
	TenantID     uint64 `json:"tenant_id"`
	TenantName   string `json:"tenant_name"`
	OwnerID      uint64 `json:"owner_id"`
	BedID        uint64 `json:"bed_id"`
	CheckOutDate string `json:"check_out_date"`
}
