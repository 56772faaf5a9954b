package engine

import (
	"context"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

// Stats is the dashboard summary for one owner and one month.
type Stats struct {
	TotalPGs           int     `json:"total_pgs"`
	TotalRooms         int     `json:"total_rooms"`
	TotalBeds          int     `json:"total_beds"`
	OccupiedBeds       int     `json:"occupied_beds"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	TotalExpectedRent  float64 `json:"total_expected_rent"`
	TotalCollectedRent float64 `json:"total_collected_rent"`
	TotalPendingRent   float64 `json:"total_pending_rent"`
}

// ComputeStats aggregates inventory and the month's rent ledger into
// dashboard numbers.  A zero month means the clock's current month.
// With no beds the occupancy rate is 0, not a division error, and an
// owner without properties gets an all-zero result.
//
// A record marked paid with a zero amount_paid counts as collected at
// its amount_due.  That special case exists for ledger rows written
// before amount_paid was recorded at all; do not copy it anywhere else.
// Pending rent is expected minus collected and may go negative under
// overpayment.
func (e *Engine) ComputeStats(ctx context.Context, ownerID uint64, month time.Time) (*Stats, error) {
	if month.IsZero() {
		month = e.today()
	}
	month = monthStart(month)

	counts, err := e.store.InventoryCounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	records, err := e.store.RentRecordsForMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	s := &Stats{
		TotalPGs:     counts.PGs,
		TotalRooms:   counts.Rooms,
		TotalBeds:    counts.Beds,
		OccupiedBeds: counts.OccupiedBeds,
	}
	if counts.Beds > 0 {
		s.OccupancyRate = float64(counts.OccupiedBeds) / float64(counts.Beds) * 100
	}
	for _, r := range records {
		s.TotalExpectedRent += r.AmountDue
		collected := r.AmountPaid
		if r.Status == model.RentPaid && r.AmountPaid <= 0 {
			collected = r.AmountDue
		}
		s.TotalCollectedRent += collected
	}
	s.TotalPendingRent = s.TotalExpectedRent - s.TotalCollectedRent
	return s, nil
}
