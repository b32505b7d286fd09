package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/merendaflow/merenda-backend/api/responses"
	"github.com/merendaflow/merenda-backend/api/validators"
	"github.com/merendaflow/merenda-backend/internal/inventory"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/logger"
)

type foodItemPayload struct {
	Name              string          `json:"name" validate:"required,max=120"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit" validate:"required,max=30"`
	NutritionalInfo   string          `json:"nutritional_info" validate:"max=500"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

func (p foodItemPayload) check() error {
	if p.Quantity.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if p.LowStockThreshold.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold must not be negative")
	}
	return nil
}

type adjustQuantityPayload struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// InventoryList returns every stocked item.
func InventoryList(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.List(ctx))
	}
}

// InventoryLowStock returns the items below their restock threshold.
func InventoryLowStock(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.ListLowStock(ctx))
	}
}

// InventoryAdd registers a new item and returns it with its assigned id.
func InventoryAdd(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}

		var payload foodItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := store.Add(ctx, inventory.AddItemInput{
			Name:              validators.SanitizeString(payload.Name, 120),
			Quantity:          payload.Quantity,
			Unit:              validators.SanitizeString(payload.Unit, 30),
			NutritionalInfo:   validators.SanitizeString(payload.NutritionalInfo, 500),
			LowStockThreshold: payload.LowStockThreshold,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// InventoryGet returns one item by id.
func InventoryGet(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}

		item, err := store.GetByID(ctx, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryUpdate replaces an item wholesale.
func InventoryUpdate(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}

		var payload foodItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item := inventory.FoodItem{
			ID:                chi.URLParam(r, "id"),
			Name:              validators.SanitizeString(payload.Name, 120),
			Quantity:          payload.Quantity,
			Unit:              validators.SanitizeString(payload.Unit, 30),
			NutritionalInfo:   validators.SanitizeString(payload.NutritionalInfo, 500),
			LowStockThreshold: payload.LowStockThreshold,
		}
		if err := store.Update(ctx, item); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryDelete removes an item; a missing id still returns 200.
func InventoryDelete(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}

		if err := store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// InventoryAdjustQuantity sets an item's quantity. Negative requests are
// clamped to zero rather than rejected.
func InventoryAdjustQuantity(store inventory.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory store unavailable"))
			return
		}

		var payload adjustQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id := chi.URLParam(r, "id")
		if err := store.AdjustQuantity(ctx, id, payload.Quantity); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := store.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
