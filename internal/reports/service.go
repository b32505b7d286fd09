package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/merendaflow/merenda-backend/internal/inventory"
	"github.com/merendaflow/merenda-backend/internal/schedule"
	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/types"
)

// Report is a rendered tabular report: a header row plus string rows, the
// way the front end tabulates them.
type Report struct {
	Kind        enums.ReportKind `json:"kind"`
	Title       string           `json:"title"`
	Headers     []string         `json:"headers"`
	Rows        [][]string       `json:"rows"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Service produces the reports the front end offers.
type Service interface {
	Generate(ctx context.Context, kind enums.ReportKind, start, end types.Date) (*Report, error)
}

type service struct {
	inventory inventory.Store
	schedule  schedule.Store
}

// NewService constructs a report service over both state stores.
func NewService(inventoryStore inventory.Store, scheduleStore schedule.Store) (Service, error) {
	if inventoryStore == nil {
		return nil, fmt.Errorf("inventory store required")
	}
	if scheduleStore == nil {
		return nil, fmt.Errorf("schedule store required")
	}
	return &service{inventory: inventoryStore, schedule: scheduleStore}, nil
}

// Generate renders the requested report. The date range bounds the
// schedule-activity report; the inventory reports describe current state
// and ignore it.
func (s *service) Generate(ctx context.Context, kind enums.ReportKind, start, end types.Date) (*Report, error) {
	switch kind {
	case enums.ReportKindInventoryFull:
		return s.inventoryReport(ctx, false)
	case enums.ReportKindLowStock:
		return s.inventoryReport(ctx, true)
	case enums.ReportKindScheduleActivity:
		return s.scheduleReport(ctx, start, end)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown report kind")
	}
}

func (s *service) inventoryReport(ctx context.Context, lowOnly bool) (*Report, error) {
	var items []inventory.FoodItem
	kind := enums.ReportKindInventoryFull
	title := "Full inventory"
	if lowOnly {
		items = s.inventory.ListLowStock(ctx)
		kind = enums.ReportKindLowStock
		title = "Low-stock items"
	} else {
		items = s.inventory.List(ctx)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		status := "ok"
		if item.IsLowStock() {
			status = "low stock"
		}
		rows = append(rows, []string{
			item.Name,
			item.Quantity.String(),
			item.Unit,
			item.LowStockThreshold.String(),
			status,
		})
	}

	return &Report{
		Kind:        kind,
		Title:       title,
		Headers:     []string{"Item", "Quantity", "Unit", "Threshold", "Status"},
		Rows:        rows,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *service) scheduleReport(ctx context.Context, start, end types.Date) (*Report, error) {
	if start.IsZero() || end.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	rows := make([][]string, 0)
	for _, entry := range s.schedule.List(ctx) {
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		rows = append(rows, []string{
			entry.Date.String(),
			entry.MealPeriod.String(),
			entry.Owner,
			entry.Status.String(),
		})
	}

	return &Report{
		Kind:        enums.ReportKindScheduleActivity,
		Title:       fmt.Sprintf("Schedule activity %s to %s", start, end),
		Headers:     []string{"Date", "Meal period", "Student", "Status"},
		Rows:        rows,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
