package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stayease/pg-manager/internal/model"
)

// errBoom stands in for an arbitrary store failure.
var errBoom = errors.New("boom")

// fakeStore is an in-memory Store.  WithinTx runs the callback on a
// deep copy and only adopts it on success, which gives the tests real
// rollback semantics to assert against.
type fakeStore struct {
	pgOwner map[uint64]uint64 // pg id -> owner id
	rooms   map[uint64]uint64 // room id -> pg id
	beds    map[uint64]*model.Bed
	tenants map[uint64]*model.Tenant
	rents   map[uint64]*model.RentRecord
	nextID  uint64

	failCreateRent bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pgOwner: map[uint64]uint64{},
		rooms:   map[uint64]uint64{},
		beds:    map[uint64]*model.Bed{},
		tenants: map[uint64]*model.Tenant{},
		rents:   map[uint64]*model.RentRecord{},
	}
}

func (s *fakeStore) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addPG(owner uint64) uint64 {
	id := s.id()
	s.pgOwner[id] = owner
	return id
}

func (s *fakeStore) addRoom(pg uint64) uint64 {
	id := s.id()
	s.rooms[id] = pg
	return id
}

func (s *fakeStore) addBed(room uint64, price float64) uint64 {
	id := s.id()
	s.beds[id] = &model.Bed{ID: id, RoomID: room, BedNumber: fmt.Sprintf("B%d", id), MonthlyPrice: price}
	return id
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextID = s.nextID
	c.failCreateRent = s.failCreateRent
	for k, v := range s.pgOwner {
		c.pgOwner[k] = v
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.beds {
		cp := *v
		c.beds[k] = &cp
	}
	for k, v := range s.tenants {
		cp := *v
		c.tenants[k] = &cp
	}
	for k, v := range s.rents {
		cp := *v
		c.rents[k] = &cp
	}
	return c
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(Tx) error) error {
	c := s.clone()
	if err := fn(c); err != nil {
		return err
	}
	*s = *c
	return nil
}

func (s *fakeStore) bedOwner(bedID uint64) (uint64, bool) {
	b, ok := s.beds[bedID]
	if !ok {
		return 0, false
	}
	pg, ok := s.rooms[b.RoomID]
	if !ok {
		return 0, false
	}
	owner, ok := s.pgOwner[pg]
	return owner, ok
}

func (s *fakeStore) BedForOwner(ctx context.Context, bedID, ownerID uint64) (*model.BedPlacement, error) {
	owner, ok := s.bedOwner(bedID)
	if !ok || owner != ownerID {
		return nil, ErrNotFound
	}
	cp := *s.beds[bedID]
	return &model.BedPlacement{Bed: cp, PGID: s.rooms[cp.RoomID]}, nil
}

func (s *fakeStore) SetBedOccupied(ctx context.Context, bedID uint64, occupied bool) error {
	b, ok := s.beds[bedID]
	if !ok {
		return ErrNotFound
	}
	b.IsOccupied = occupied
	return nil
}

func (s *fakeStore) CreateTenant(ctx context.Context, t *model.Tenant) error {
	t.ID = s.id()
	t.CreatedAt = time.Now().UTC()
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *fakeStore) TenantForOwner(ctx context.Context, tenantID, ownerID uint64) (*model.Tenant, error) {
	t, ok := s.tenants[tenantID]
	if !ok || s.pgOwner[t.PGID] != ownerID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeStore) MarkTenantCheckedOut(ctx context.Context, tenantID uint64, checkOut time.Time) error {
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	t.Status = model.TenantCheckedOut
	d := checkOut
	t.CheckOutDate = &d
	return nil
}

func (s *fakeStore) DeleteTenant(ctx context.Context, tenantID uint64) error {
	if _, ok := s.tenants[tenantID]; !ok {
		return ErrNotFound
	}
	delete(s.tenants, tenantID)
	for id, r := range s.rents {
		if r.TenantID == tenantID {
			delete(s.rents, id)
		}
	}
	return nil
}

func (s *fakeStore) ActiveTenantBillings(ctx context.Context, ownerID uint64) ([]model.TenantBilling, error) {
	var out []model.TenantBilling
	for _, t := range s.tenants {
		if t.Status != model.TenantActive || s.pgOwner[t.PGID] != ownerID {
			continue
		}
		out = append(out, model.TenantBilling{
			TenantID:     t.ID,
			PGID:         t.PGID,
			BedID:        t.BedID,
			MonthlyPrice: s.beds[t.BedID].MonthlyPrice,
		})
	}
	return out, nil
}

func (s *fakeStore) CreateRentRecord(ctx context.Context, r *model.RentRecord) error {
	if s.failCreateRent {
		return errBoom
	}
	for _, ex := range s.rents {
		if ex.TenantID == r.TenantID && ex.Month.Equal(r.Month) {
			return fmt.Errorf("%w: rent record already exists for this month", ErrConflict)
		}
	}
	r.ID = s.id()
	r.CreatedAt = time.Now().UTC()
	cp := *r
	s.rents[r.ID] = &cp
	return nil
}

func (s *fakeStore) RentRecordExists(ctx context.Context, tenantID uint64, month time.Time) (bool, error) {
	for _, r := range s.rents {
		if r.TenantID == tenantID && r.Month.Equal(month) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) RentRecordForOwner(ctx context.Context, rentID, ownerID uint64) (*model.RentRecord, error) {
	r, ok := s.rents[rentID]
	if !ok || s.pgOwner[r.PGID] != ownerID {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) UpdateRentRecord(ctx context.Context, r *model.RentRecord) error {
	ex, ok := s.rents[r.ID]
	if !ok {
		return ErrNotFound
	}
	ex.AmountPaid = r.AmountPaid
	ex.Status = r.Status
	if r.PaymentDate != nil {
		d := *r.PaymentDate
		ex.PaymentDate = &d
	} else {
		ex.PaymentDate = nil
	}
	return nil
}

func (s *fakeStore) InventoryCounts(ctx context.Context, ownerID uint64) (model.InventoryCounts, error) {
	var c model.InventoryCounts
	for _, owner := range s.pgOwner {
		if owner == ownerID {
			c.PGs++
		}
	}
	for _, pg := range s.rooms {
		if s.pgOwner[pg] == ownerID {
			c.Rooms++
		}
	}
	for _, b := range s.beds {
		if owner, ok := s.bedOwner(b.ID); ok && owner == ownerID {
			c.Beds++
			if b.IsOccupied {
				c.OccupiedBeds++
			}
		}
	}
	return c, nil
}

func (s *fakeStore) RentRecordsForMonth(ctx context.Context, ownerID uint64, month time.Time) ([]model.RentRecord, error) {
	var out []model.RentRecord
	for _, r := range s.rents {
		if s.pgOwner[r.PGID] == ownerID && r.Month.Equal(month) {
			out = append(out, *r)
		}
	}
	return out, nil
}

// date builds a UTC date, the only precision the engine works at.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedClock pins the engine's idea of "now".
func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 15, 4, 5, 0, time.UTC) }
}
