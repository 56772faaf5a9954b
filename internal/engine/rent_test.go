package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayease/pg-manager/internal/model"
)

// seedTenants builds an owner with one PG and two active tenants on
// beds priced 5000 and 3000, checked in on the first of January.
func seedTenants(t *testing.T, e *Engine, s *fakeStore) (uint64, uint64) {
	t.Helper()
	pg := s.addPG(ownerID)
	room := s.addRoom(pg)
	bedA := s.addBed(room, 5000)
	bedB := s.addBed(room, 3000)
	ctx := context.Background()

	a, err := e.CheckIn(ctx, ownerID, checkInInput(bedA, date(2024, time.January, 1)))
	require.NoError(t, err)
	in := checkInInput(bedB, date(2024, time.January, 1))
	in.Name = "Meera Nair"
	b, err := e.CheckIn(ctx, ownerID, in)
	require.NoError(t, err)
	return a.ID, b.ID
}

func rentFor(s *fakeStore, tenantID uint64, month time.Time) *model.RentRecord {
	for _, r := range s.rents {
		if r.TenantID == tenantID && r.Month.Equal(month) {
			return r
		}
	}
	return nil
}

func TestGenerateRentForMonth(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 1))
	a, b := seedTenants(t, e, s)

	created, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	feb := date(2024, time.February, 1)
	ra := rentFor(s, a, feb)
	require.NotNil(t, ra)
	assert.Equal(t, 5000.0, ra.AmountDue, "batch generation bills the full bed price")
	assert.Equal(t, model.RentPending, ra.Status)

	rb := rentFor(s, b, feb)
	require.NotNil(t, rb)
	assert.Equal(t, 3000.0, rb.AmountDue)
}

func TestGenerateRentIsIdempotent(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 1))
	seedTenants(t, e, s)
	ctx := context.Background()

	created, err := e.GenerateRentForMonth(ctx, ownerID, date(2024, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = e.GenerateRentForMonth(ctx, ownerID, date(2024, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, s.rents, 4) // 2 check-in records + 2 February records
}

func TestGenerateRentSkipsCheckInMonth(t *testing.T) {
	// Tenants already hold a (prorated or full) record for their
	// check-in month, so generating that month creates nothing.
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.January, 15))
	seedTenants(t, e, s)

	created, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestGenerateRentSkipsCheckedOutTenants(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 1))
	a, _ := seedTenants(t, e, s)
	ctx := context.Background()

	_, err := e.CheckOut(ctx, ownerID, a)
	require.NoError(t, err)

	created, err := e.GenerateRentForMonth(ctx, ownerID, date(2024, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Nil(t, rentFor(s, a, date(2024, time.February, 1)))
}

func TestGenerateRentDefaultsToCurrentMonth(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 20))
	a, _ := seedTenants(t, e, s)

	created, err := e.GenerateRentForMonth(context.Background(), ownerID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.NotNil(t, rentFor(s, a, date(2024, time.February, 1)))
}

func TestGenerateRentNormalizesMonth(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 1))
	a, _ := seedTenants(t, e, s)

	// Any day of the month addresses the same billing period.
	created, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 17))
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.NotNil(t, rentFor(s, a, date(2024, time.February, 1)))
}

func statusPtr(s model.RentStatus) *model.RentStatus { return &s }
func floatPtr(f float64) *float64                    { return &f }

func TestRecordPaymentPaidAutofillsAmount(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	a, _ := seedTenants(t, e, s)
	_, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 1))
	require.NoError(t, err)

	rec := rentFor(s, a, date(2024, time.February, 1))
	got, err := e.RecordPayment(context.Background(), ownerID, rec.ID, PaymentUpdate{Status: statusPtr(model.RentPaid)})
	require.NoError(t, err)

	assert.Equal(t, model.RentPaid, got.Status)
	assert.Equal(t, 5000.0, got.AmountPaid)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, date(2024, time.February, 3), *got.PaymentDate)
}

func TestRecordPaymentExplicitAmountWins(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	a, _ := seedTenants(t, e, s)
	_, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 1))
	require.NoError(t, err)

	rec := rentFor(s, a, date(2024, time.February, 1))
	got, err := e.RecordPayment(context.Background(), ownerID, rec.ID, PaymentUpdate{
		Status:     statusPtr(model.RentPaid),
		AmountPaid: floatPtr(6000),
	})
	require.NoError(t, err)
	assert.Equal(t, 6000.0, got.AmountPaid, "an explicit amount overrides the autofill, overpayment included")
}

func TestRecordPaymentPartial(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	a, _ := seedTenants(t, e, s)
	_, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 1))
	require.NoError(t, err)

	rec := rentFor(s, a, date(2024, time.February, 1))
	got, err := e.RecordPayment(context.Background(), ownerID, rec.ID, PaymentUpdate{
		Status:     statusPtr(model.RentPartial),
		AmountPaid: floatPtr(2000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.RentPartial, got.Status)
	assert.Equal(t, 2000.0, got.AmountPaid)
	assert.Equal(t, 5000.0, got.AmountDue, "amount_due never changes after creation")
}

func TestRecordPaymentExplicitDate(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	a, _ := seedTenants(t, e, s)
	_, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 1))
	require.NoError(t, err)

	rec := rentFor(s, a, date(2024, time.February, 1))
	paid := date(2024, time.February, 10)
	got, err := e.RecordPayment(context.Background(), ownerID, rec.ID, PaymentUpdate{
		Status:      statusPtr(model.RentPaid),
		PaymentDate: &paid,
	})
	require.NoError(t, err)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, paid, *got.PaymentDate)
}

func TestRecordPaymentKeepsExistingDate(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	a, _ := seedTenants(t, e, s)
	ctx := context.Background()
	_, err := e.GenerateRentForMonth(ctx, ownerID, date(2024, time.February, 1))
	require.NoError(t, err)

	rec := rentFor(s, a, date(2024, time.February, 1))
	_, err = e.RecordPayment(ctx, ownerID, rec.ID, PaymentUpdate{
		Status:     statusPtr(model.RentPartial),
		AmountPaid: floatPtr(2000),
	})
	require.NoError(t, err)

	// Second installment later; the original payment date stands.
	e2 := New(s, fixedClock(2024, time.February, 20))
	got, err := e2.RecordPayment(ctx, ownerID, rec.ID, PaymentUpdate{
		Status:     statusPtr(model.RentPaid),
		AmountPaid: floatPtr(5000),
	})
	require.NoError(t, err)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, date(2024, time.February, 3), *got.PaymentDate)
}

func TestRecordPaymentInvalidStatus(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	bogus := model.RentStatus("settled")
	_, err := e.RecordPayment(context.Background(), ownerID, 1, PaymentUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordPaymentForeignRecord(t *testing.T) {
	s := newFakeStore()
	e := New(s, fixedClock(2024, time.February, 3))
	a, _ := seedTenants(t, e, s)
	_, err := e.GenerateRentForMonth(context.Background(), ownerID, date(2024, time.February, 1))
	require.NoError(t, err)

	rec := rentFor(s, a, date(2024, time.February, 1))
	_, err = e.RecordPayment(context.Background(), ownerID+1, rec.ID, PaymentUpdate{Status: statusPtr(model.RentPaid)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, model.RentPending, s.rents[rec.ID].Status)
}
