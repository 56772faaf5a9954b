package model

import (
	"fmt"
	"time"
)

// RentStatus is the closed set of rent record payment states.  No
// transition graph is enforced between them; any status may follow any
// other.  That mirrors the behaviour the ledger has always had and is
// flagged as a known simplification rather than a designed rule.
type RentStatus string

const (
	RentPending RentStatus = "pending"
	RentPartial RentStatus = "partial"
	RentPaid    RentStatus = "paid"
)

// ParseRentStatus converts a wire string into a RentStatus, rejecting
// anything outside the closed set.
func ParseRentStatus(s string) (RentStatus, error) {
	switch RentStatus(s) {
	case RentPending, RentPartial, RentPaid:
		return RentStatus(s), nil
	}
	return "", fmt.Errorf("unknown rent status %q", s)
}

// RentRecord is one tenant's rent for one calendar month.  Month is
// always normalized to the first day of the month; together with
// TenantID it is unique.  AmountDue is fixed at creation (prorated for
// the check-in month, full price otherwise) and never changes.
// Corresponds to a row in the `rent_records` table.
type RentRecord struct {
	ID          uint64     `json:"id"`           // rent_records.id
	TenantID    uint64     `json:"tenant_id"`    // rent_records.tenant_id
	PGID        uint64     `json:"pg_id"`        // rent_records.pg_id
	Month       time.Time  `json:"month"`        // rent_records.month (first day of month)
	AmountDue   float64    `json:"amount_due"`   // rent_records.amount_due
	AmountPaid  float64    `json:"amount_paid"`  // rent_records.amount_paid
	Status      RentStatus `json:"status"`       // rent_records.status
	PaymentDate *time.Time `json:"payment_date"` // rent_records.payment_date (nullable)
	CreatedAt   time.Time  `json:"created_at"`   // rent_records.created_at
}

// InventoryCounts aggregates the size of one owner's inventory for the
// dashboard.
type InventoryCounts struct {
	PGs          int
	Rooms        int
	Beds         int
	OccupiedBeds int
}
