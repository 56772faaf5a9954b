package engine

import (
	"context"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

// Tx is the set of store operations the engine needs inside a
// transaction.  Lookups scoped "ForOwner" resolve ownership through the
// PG chain and must return ErrNotFound both for missing rows and for
// rows owned by another user.
type Tx interface {
	BedForOwner(ctx context.Context, bedID, ownerID uint64) (*model.BedPlacement, error)
	SetBedOccupied(ctx context.Context, bedID uint64, occupied bool) error

	CreateTenant(ctx context.Context, t *model.Tenant) error
	TenantForOwner(ctx context.Context, tenantID, ownerID uint64) (*model.Tenant, error)
	MarkTenantCheckedOut(ctx context.Context, tenantID uint64, checkOut time.Time) error
	DeleteTenant(ctx context.Context, tenantID uint64) error
	ActiveTenantBillings(ctx context.Context, ownerID uint64) ([]model.TenantBilling, error)

	CreateRentRecord(ctx context.Context, r *model.RentRecord) error
	RentRecordExists(ctx context.Context, tenantID uint64, month time.Time) (bool, error)
	RentRecordForOwner(ctx context.Context, rentID, ownerID uint64) (*model.RentRecord, error)
	UpdateRentRecord(ctx context.Context, r *model.RentRecord) error
}

// Store is the persistence collaborator.  WithinTx runs fn atomically:
// when fn returns an error nothing it did is visible afterwards.  The
// read-only methods outside Tx serve the dashboard.
type Store interface {
	Tx
	WithinTx(ctx context.Context, fn func(Tx) error) error

	InventoryCounts(ctx context.Context, ownerID uint64) (model.InventoryCounts, error)
	RentRecordsForMonth(ctx context.Context, ownerID uint64, month time.Time) ([]model.RentRecord, error)
}

// Engine ties the store to a clock.  The clock is injectable so tests
// can pin "today"; it feeds check_out_date, defaulted payment dates and
// default-month computations.
type Engine struct {
	store Store
	now   func() time.Time
}

// New constructs an Engine.  A nil clock falls back to time.Now.
func New(store Store, now func() time.Time) *Engine {
	if store == nil {
		panic("nil store passed to engine.New")
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, now: now}
}

// today returns the clock's current day truncated to a date in UTC.
func (e *Engine) today() time.Time {
	n := e.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// monthStart normalizes any date to the first day of its month.
func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
