package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/kv"
	"github.com/merendaflow/merenda-backend/pkg/logger"
	"github.com/merendaflow/merenda-backend/pkg/metrics"
)

// BlobKey is the persistence adapter key owning the serialized inventory.
const BlobKey = "merenda:inventory"

const storeName = "inventory"

// FoodItem is the authoritative record for one stocked item.
type FoodItem struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	NutritionalInfo   string          `json:"nutritional_info"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// IsLowStock reports whether the item is below its threshold. Stock equal
// to the threshold is not low.
func (f FoodItem) IsLowStock() bool {
	return f.Quantity.LessThan(f.LowStockThreshold)
}

// AddItemInput holds the fields of a new item; the store assigns the id.
type AddItemInput struct {
	Name              string
	Quantity          decimal.Decimal
	Unit              string
	NutritionalInfo   string
	LowStockThreshold decimal.Decimal
}

// Store owns the in-memory inventory collection and mirrors every change
// to the persistence adapter.
type Store interface {
	Add(ctx context.Context, input AddItemInput) (*FoodItem, error)
	Update(ctx context.Context, item FoodItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*FoodItem, error)
	List(ctx context.Context) []FoodItem
	ListLowStock(ctx context.Context) []FoodItem
	AdjustQuantity(ctx context.Context, id string, newQuantity decimal.Decimal) error
}

type store struct {
	mu      sync.Mutex
	items   []FoodItem
	adapter kv.Store
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

// NewStore loads the persisted inventory (seeding the default dataset when
// no blob exists yet) and returns a ready store. The initial load never
// writes back to the adapter.
func NewStore(ctx context.Context, adapter kv.Store, logg *logger.Logger, m *metrics.StoreMetrics) (Store, error) {
	if adapter == nil {
		return nil, fmt.Errorf("persistence adapter required")
	}

	s := &store{adapter: adapter, logg: logg, metrics: m}

	blob, err := adapter.Load(ctx, BlobKey)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		s.items = seedItems()
		if logg != nil {
			logg.Info(ctx, "inventory blob absent, seeded default dataset")
		}
	case err != nil:
		return nil, fmt.Errorf("loading inventory blob: %w", err)
	default:
		if err := json.Unmarshal(blob, &s.items); err != nil {
			return nil, fmt.Errorf("decoding inventory blob: %w", err)
		}
	}

	return s, nil
}

// Add assigns a fresh id, appends the item and persists the collection.
func (s *store) Add(ctx context.Context, input AddItemInput) (item *FoodItem, err error) {
	defer s.observe("add", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	created := FoodItem{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Quantity:          input.Quantity,
		Unit:              input.Unit,
		NutritionalInfo:   input.NutritionalInfo,
		LowStockThreshold: input.LowStockThreshold,
	}

	s.items = append(s.items, created)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return nil, err
	}
	return &created, nil
}

// Update replaces the record matching item.ID wholesale.
func (s *store) Update(ctx context.Context, item FoodItem) (err error) {
	defer s.observe("update", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(item.ID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}

	previous := s.items[idx]
	s.items[idx] = item
	if err := s.persistLocked(ctx); err != nil {
		s.items[idx] = previous
		return err
	}
	return nil
}

// Delete removes the record if present; deleting a missing id is a no-op.
func (s *store) Delete(ctx context.Context, id string) (err error) {
	defer s.observe("delete", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = append(s.items[:idx], append([]FoodItem{removed}, s.items[idx:]...)...)
		return err
	}
	return nil
}

// GetByID returns a copy of the record with that id.
func (s *store) GetByID(_ context.Context, id string) (*FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}
	item := s.items[idx]
	return &item, nil
}

// List returns the collection in insertion order.
func (s *store) List(_ context.Context) []FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FoodItem(nil), s.items...)
}

// ListLowStock returns the items below their threshold, in insertion order.
func (s *store) ListLowStock(_ context.Context) []FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	low := make([]FoodItem, 0)
	for _, item := range s.items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

// AdjustQuantity sets the quantity to max(0, newQuantity), clamping
// negative requests to zero.
func (s *store) AdjustQuantity(ctx context.Context, id string, newQuantity decimal.Decimal) (err error) {
	defer s.observe("adjust_quantity", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}

	if newQuantity.IsNegative() {
		newQuantity = decimal.Zero
	}

	previous := s.items[idx].Quantity
	s.items[idx].Quantity = newQuantity
	if err := s.persistLocked(ctx); err != nil {
		s.items[idx].Quantity = previous
		return err
	}
	return nil
}

func (s *store) indexLocked(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *store) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(s.items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding inventory")
	}
	if err := s.adapter.Save(ctx, BlobKey, blob); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting inventory")
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
