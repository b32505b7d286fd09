package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/kv"
	"github.com/merendaflow/merenda-backend/pkg/logger"
	"github.com/merendaflow/merenda-backend/pkg/metrics"
	"github.com/merendaflow/merenda-backend/pkg/types"
)

// BlobKey is the persistence adapter key owning the serialized schedule.
const BlobKey = "merenda:schedule"

// DefaultOwner is the simulated student the demo front end books for.
// The store itself supports any number of distinct owners.
const DefaultOwner = "aluno-exemplo"

const storeName = "schedule"

// Entry is one meal booking for one student on one calendar day.
type Entry struct {
	ID         string               `json:"id"`
	Date       types.Date           `json:"date"`
	MealPeriod enums.MealPeriod     `json:"meal_period"`
	Owner      string               `json:"owner"`
	Status     enums.ScheduleStatus `json:"status"`
}

// Store owns the schedule collection for all students, mirrors it to the
// persistence adapter and enforces the one-active-booking-per-slot rule.
type Store interface {
	Add(ctx context.Context, date types.Date, period enums.MealPeriod, owner string) (*Entry, error)
	Update(ctx context.Context, id string, date types.Date, period enums.MealPeriod) (*Entry, error)
	Cancel(ctx context.Context, id string) (*Entry, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) []Entry
	ListByOwner(ctx context.Context, owner string) []Entry
}

type store struct {
	mu      sync.Mutex
	entries []Entry
	adapter kv.Store
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

// NewStore loads the persisted schedule (an absent blob seeds an empty
// collection) and returns a ready store. The initial load never writes
// back to the adapter.
func NewStore(ctx context.Context, adapter kv.Store, logg *logger.Logger, m *metrics.StoreMetrics) (Store, error) {
	if adapter == nil {
		return nil, fmt.Errorf("persistence adapter required")
	}

	s := &store{adapter: adapter, logg: logg, metrics: m}

	blob, err := adapter.Load(ctx, BlobKey)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		s.entries = []Entry{}
	case err != nil:
		return nil, fmt.Errorf("loading schedule blob: %w", err)
	default:
		if err := json.Unmarshal(blob, &s.entries); err != nil {
			return nil, fmt.Errorf("decoding schedule blob: %w", err)
		}
	}

	s.sortLocked()
	return s, nil
}

// Add books a slot for the owner. A second active booking for the same
// (owner, date, meal period) is rejected without mutating state.
func (s *store) Add(ctx context.Context, date types.Date, period enums.MealPeriod, owner string) (entry *Entry, err error) {
	defer s.observe("add", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if clash := s.activeSlotLocked(owner, date, period, ""); clash != nil {
		return nil, conflictError(clash)
	}

	created := Entry{
		ID:         uuid.NewString(),
		Date:       date,
		MealPeriod: period,
		Owner:      owner,
		Status:     enums.ScheduleStatusScheduled,
	}

	s.entries = append(s.entries, created)
	s.sortLocked()
	if err := s.persistLocked(ctx); err != nil {
		s.removeLocked(created.ID)
		return nil, err
	}
	return &created, nil
}

// Update moves a booking to a new date and/or meal period. The conflict
// check runs against the new slot and skips the entry being edited; the
// status is forced back to scheduled.
func (s *store) Update(ctx context.Context, id string, date types.Date, period enums.MealPeriod) (entry *Entry, err error) {
	defer s.observe("update", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule entry not found")
	}

	owner := s.entries[idx].Owner
	if clash := s.activeSlotLocked(owner, date, period, id); clash != nil {
		return nil, conflictError(clash)
	}

	previous := s.entries[idx]
	s.entries[idx].Date = date
	s.entries[idx].MealPeriod = period
	s.entries[idx].Status = enums.ScheduleStatusScheduled
	s.sortLocked()
	if err := s.persistLocked(ctx); err != nil {
		i := s.indexLocked(id)
		s.entries[i] = previous
		s.sortLocked()
		return nil, err
	}

	updated := s.entries[s.indexLocked(id)]
	return &updated, nil
}

// Cancel marks the booking cancelled, freeing its slot for a new booking.
func (s *store) Cancel(ctx context.Context, id string) (entry *Entry, err error) {
	defer s.observe("cancel", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule entry not found")
	}

	previous := s.entries[idx].Status
	s.entries[idx].Status = enums.ScheduleStatusCancelled
	if err := s.persistLocked(ctx); err != nil {
		s.entries[idx].Status = previous
		return nil, err
	}

	cancelled := s.entries[idx]
	return &cancelled, nil
}

// Remove deletes the booking outright; removing a missing id is a no-op.
func (s *store) Remove(ctx context.Context, id string) (err error) {
	defer s.observe("remove", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}

	removed := s.entries[idx]
	s.removeLocked(id)
	if err := s.persistLocked(ctx); err != nil {
		s.entries = append(s.entries, removed)
		s.sortLocked()
		return err
	}
	return nil
}

// List returns every entry in ascending date order.
func (s *store) List(_ context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// ListByOwner returns the owner's entries in ascending date order.
func (s *store) ListByOwner(_ context.Context, owner string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]Entry, 0)
	for _, entry := range s.entries {
		if entry.Owner == owner {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// activeSlotLocked returns the entry blocking (owner, date, period), if
// any. Only entries whose status is exactly scheduled block a slot; the
// date comparison is calendar-day granular. excludeID skips the entry
// being edited.
func (s *store) activeSlotLocked(owner string, date types.Date, period enums.MealPeriod, excludeID string) *Entry {
	for i := range s.entries {
		entry := &s.entries[i]
		if entry.ID == excludeID {
			continue
		}
		if entry.Owner == owner &&
			entry.Date == date &&
			entry.MealPeriod == period &&
			entry.Status == enums.ScheduleStatusScheduled {
			return entry
		}
	}
	return nil
}

func conflictError(clash *Entry) error {
	return pkgerrors.New(pkgerrors.CodeConflict, "meal slot already scheduled").
		WithDetails(map[string]any{
			"date":           clash.Date.String(),
			"meal_period":    clash.MealPeriod.String(),
			"conflicting_id": clash.ID,
		})
}

func (s *store) indexLocked(id string) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (s *store) removeLocked(id string) {
	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

// sortLocked orders the exposed view ascending by date. The sort is
// stable: same-day entries keep their insertion order.
func (s *store) sortLocked() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Date.Before(s.entries[j].Date)
	})
}

func (s *store) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(s.entries)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding schedule")
	}
	if err := s.adapter.Save(ctx, BlobKey, blob); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting schedule")
	}
	return nil
}

func (s *store) observe(op string, start time.Time, err *error) {
	s.metrics.ObserveDuration(storeName, op, time.Since(start))
	if err != nil && *err != nil {
		s.metrics.IncFailure(storeName, op)
		return
	}
	s.metrics.IncSuccess(storeName, op)
}
