package model

import "time"

// TenantStatus is the closed set of tenant lifecycle states.  A tenant
// is created active and transitions to checked_out exactly once; the
// transition is terminal.
type TenantStatus string

const (
	TenantActive     TenantStatus = "active"
	TenantCheckedOut TenantStatus = "checked_out"
)

// Tenant represents a person occupying a bed.  The bed and PG
// references are fixed at creation.  CheckOutDate stays nil while the
// tenant is active.  Corresponds to a row in the `tenants` table.
type Tenant struct {
	ID              uint64       `json:"id"`               // tenants.id
	PGID            uint64       `json:"pg_id"`            // tenants.pg_id
	BedID           uint64       `json:"bed_id"`           // tenants.bed_id
	Name            string       `json:"name"`             // tenants.name
	Phone           string       `json:"phone"`            // tenants.phone
	Email           *string      `json:"email"`            // tenants.email (nullable)
	IDProof         *string      `json:"id_proof"`         // tenants.id_proof (nullable)
	CheckInDate     time.Time    `json:"check_in_date"`    // tenants.check_in_date
	CheckOutDate    *time.Time   `json:"check_out_date"`   // tenants.check_out_date (nullable)
	Status          TenantStatus `json:"status"`           // tenants.status
	SecurityDeposit float64      `json:"security_deposit"` // tenants.security_deposit
	CreatedAt       time.Time    `json:"created_at"`       // tenants.created_at
}

// TenantBilling is the slice of tenant state the monthly rent batch
// needs: identity plus the current price of the occupied bed.
type TenantBilling struct {
	TenantID     uint64
	PGID         uint64
	BedID        uint64
	MonthlyPrice float64
}
