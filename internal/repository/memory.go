package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/booking-reservation/internal/model"
)

// MemoryStore keeps reservations in process memory.  Each unit of work
// stages its changes in an overlay and applies them under the store lock
// on Commit; ids are allocated at Create time so concurrent units never
// share one.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]memoryRecord
}

type memoryRecord struct {
	name         string
	email        string
	scheduledFor string
	partySize    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[int64]memoryRecord)}
}

func (s *MemoryStore) Begin(ctx context.Context) (UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError("begin", err)
	}
	return &memoryUnit{store: s, pending: make(map[int64]*memoryRecord)}, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return storeError("ping", ctx.Err()) }

// Len returns the number of committed reservations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) allocate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

type memoryUnit struct {
	store *MemoryStore
	// pending overlays the committed records; a nil entry is a staged delete.
	pending map[int64]*memoryRecord
	done    bool
}

func (u *memoryUnit) Reservations() ReservationGateway { return u }

func (u *memoryUnit) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for id, rec := range u.pending {
		if rec == nil {
			delete(u.store.records, id)
			continue
		}
		u.store.records[id] = *rec
	}
	return nil
}

func (u *memoryUnit) Rollback() error {
	u.done = true
	u.pending = nil
	return nil
}

func (u *memoryUnit) lookup(id int64) bool {
	if rec, ok := u.pending[id]; ok {
		return rec != nil
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	_, ok := u.store.records[id]
	return ok
}

func recordOf(r *model.Reservation) *memoryRecord {
	return &memoryRecord{name: r.Name(), email: r.Email(), scheduledFor: r.ScheduledFor(), partySize: r.PartySize()}
}

func (u *memoryUnit) Create(ctx context.Context, r *model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return storeError("insert reservation", err)
	}
	id := u.store.allocate()
	u.pending[id] = recordOf(r)
	r.AssignID(id)
	return nil
}

func (u *memoryUnit) ReadAll(ctx context.Context) ([]*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError("select reservations", err)
	}
	merged := make(map[int64]memoryRecord)
	u.store.mu.RLock()
	for id, rec := range u.store.records {
		merged[id] = rec
	}
	u.store.mu.RUnlock()
	for id, rec := range u.pending {
		if rec == nil {
			delete(merged, id)
			continue
		}
		merged[id] = *rec
	}

	ids := make([]int64, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*model.Reservation, 0, len(ids))
	for _, id := range ids {
		rec := merged[id]
		id := id
		res, err := model.NewReservation(&id, rec.name, rec.email, rec.scheduledFor, rec.partySize)
		if err != nil {
			return nil, storeError("decode reservation", err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (u *memoryUnit) Update(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError("update reservation", err)
	}
	id, ok := r.ID()
	if !ok || !u.lookup(id) {
		return nil, nil
	}
	u.pending[id] = recordOf(r)
	return r, nil
}

func (u *memoryUnit) Delete(ctx context.Context, r *model.Reservation) (DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeError("delete reservation", err)
	}
	id, ok := r.ID()
	if !ok || !u.lookup(id) {
		return DeleteMissing, nil
	}
	u.pending[id] = nil
	return DeleteSuccess, nil
}
