package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayease/pg-manager/internal/model"
)

const ownerID = uint64(1000)

// seedBed builds a store with one owner, one PG, one room and one bed
// at the given price, returning the store and the bed id.
func seedBed(price float64) (*fakeStore, uint64) {
	s := newFakeStore()
	pg := s.addPG(ownerID)
	room := s.addRoom(pg)
	bed := s.addBed(room, price)
	return s, bed
}

func checkInInput(bedID uint64, day time.Time) CheckInInput {
	return CheckInInput{
		BedID:           bedID,
		Name:            "Ravi Kumar",
		Phone:           "9876543210",
		CheckInDate:     day,
		SecurityDeposit: 10000,
	}
}

func TestCheckIn(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.January, 10))

	tenant, err := e.CheckIn(context.Background(), ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)

	assert.Equal(t, model.TenantActive, tenant.Status)
	assert.Equal(t, bed, tenant.BedID)
	assert.Equal(t, date(2024, time.January, 10), tenant.CheckInDate)
	assert.Nil(t, tenant.CheckOutDate)

	assert.True(t, s.beds[bed].IsOccupied)

	// First rent record: prorated for 22 of 31 days, pending.
	require.Len(t, s.rents, 1)
	for _, r := range s.rents {
		assert.Equal(t, tenant.ID, r.TenantID)
		assert.Equal(t, date(2024, time.January, 1), r.Month)
		assert.InDelta(t, 3548.39, r.AmountDue, 0.001)
		assert.Equal(t, 0.0, r.AmountPaid)
		assert.Equal(t, model.RentPending, r.Status)
		assert.Nil(t, r.PaymentDate)
	}
}

func TestCheckInOnTheFirstBillsFullMonth(t *testing.T) {
	s, bed := seedBed(4200)
	e := New(s, fixedClock(2024, time.March, 1))

	_, err := e.CheckIn(context.Background(), ownerID, checkInInput(bed, date(2024, time.March, 1)))
	require.NoError(t, err)

	require.Len(t, s.rents, 1)
	for _, r := range s.rents {
		assert.Equal(t, 4200.0, r.AmountDue)
	}
}

func TestCheckInValidation(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.January, 10))
	day := date(2024, time.January, 10)

	cases := []struct {
		name string
		in   CheckInInput
	}{
		{"missing bed", CheckInInput{Name: "A", Phone: "1", CheckInDate: day}},
		{"missing name", CheckInInput{BedID: bed, Phone: "1", CheckInDate: day}},
		{"blank name", CheckInInput{BedID: bed, Name: "   ", Phone: "1", CheckInDate: day}},
		{"missing phone", CheckInInput{BedID: bed, Name: "A", CheckInDate: day}},
		{"missing date", CheckInInput{BedID: bed, Name: "A", Phone: "1"}},
		{"negative deposit", CheckInInput{BedID: bed, Name: "A", Phone: "1", CheckInDate: day, SecurityDeposit: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.CheckIn(context.Background(), ownerID, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, s.tenants)
}

func TestCheckInOccupiedBed(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.January, 10))
	ctx := context.Background()

	_, err := e.CheckIn(ctx, ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)

	in := checkInInput(bed, date(2024, time.January, 12))
	in.Name = "Second Tenant"
	_, err = e.CheckIn(ctx, ownerID, in)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, s.tenants, 1)
}

func TestCheckInForeignBed(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.January, 10))

	_, err := e.CheckIn(context.Background(), ownerID+1, checkInInput(bed, date(2024, time.January, 10)))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckInRollsBackCompletely(t *testing.T) {
	s, bed := seedBed(5000)
	s.failCreateRent = true
	e := New(s, fixedClock(2024, time.January, 10))

	_, err := e.CheckIn(context.Background(), ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.ErrorIs(t, err, errBoom)

	// The failed rent insert must take the tenant and the occupancy
	// flip down with it.
	assert.Empty(t, s.tenants)
	assert.Empty(t, s.rents)
	assert.False(t, s.beds[bed].IsOccupied)
}

func TestCheckOut(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.March, 5))
	ctx := context.Background()

	tenant, err := e.CheckIn(ctx, ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)

	out, err := e.CheckOut(ctx, ownerID, tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, model.TenantCheckedOut, out.Status)
	require.NotNil(t, out.CheckOutDate)
	assert.Equal(t, date(2024, time.March, 5), *out.CheckOutDate)
	assert.False(t, s.beds[bed].IsOccupied)

	// The rent ledger is untouched, unpaid records included.
	assert.Len(t, s.rents, 1)
	for _, r := range s.rents {
		assert.Equal(t, model.RentPending, r.Status)
	}
}

func TestCheckOutTwice(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.March, 5))
	ctx := context.Background()

	tenant, err := e.CheckIn(ctx, ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)

	_, err = e.CheckOut(ctx, ownerID, tenant.ID)
	require.NoError(t, err)
	_, err = e.CheckOut(ctx, ownerID, tenant.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCheckOutForeignTenant(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.March, 5))
	ctx := context.Background()

	tenant, err := e.CheckIn(ctx, ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)

	_, err = e.CheckOut(ctx, ownerID+1, tenant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, model.TenantActive, s.tenants[tenant.ID].Status)
}

func TestDeleteActiveTenant(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.March, 5))
	ctx := context.Background()

	tenant, err := e.CheckIn(ctx, ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)

	require.NoError(t, e.DeleteTenant(ctx, ownerID, tenant.ID))

	assert.Empty(t, s.tenants)
	assert.Empty(t, s.rents)
	assert.False(t, s.beds[bed].IsOccupied)
}

func TestDeleteCheckedOutTenantLeavesBedAlone(t *testing.T) {
	s, bed := seedBed(5000)
	e := New(s, fixedClock(2024, time.March, 5))
	ctx := context.Background()

	first, err := e.CheckIn(ctx, ownerID, checkInInput(bed, date(2024, time.January, 10)))
	require.NoError(t, err)
	_, err = e.CheckOut(ctx, ownerID, first.ID)
	require.NoError(t, err)

	// A new tenant takes the same bed before the old record is purged.
	in := checkInInput(bed, date(2024, time.March, 6))
	in.Name = "Next Tenant"
	_, err = e.CheckIn(ctx, ownerID, in)
	require.NoError(t, err)

	require.NoError(t, e.DeleteTenant(ctx, ownerID, first.ID))
	assert.True(t, s.beds[bed].IsOccupied, "current tenant's occupancy must survive the purge")
	assert.Len(t, s.tenants, 1)
}
