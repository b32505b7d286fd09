package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/merendaflow/merenda-backend/api/responses"
	"github.com/merendaflow/merenda-backend/api/validators"
	"github.com/merendaflow/merenda-backend/internal/schedule"
	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/logger"
	"github.com/merendaflow/merenda-backend/pkg/types"
)

type scheduleEntryPayload struct {
	Date       string `json:"date" validate:"required"`
	MealPeriod string `json:"meal_period" validate:"required"`
	Owner      string `json:"owner" validate:"max=120"`
}

func (p scheduleEntryPayload) parse() (types.Date, enums.MealPeriod, error) {
	date, err := types.ParseDate(p.Date)
	if err != nil {
		return types.Date{}, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be a YYYY-MM-DD date")
	}
	period, err := enums.ParseMealPeriod(p.MealPeriod)
	if err != nil {
		return types.Date{}, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown meal period")
	}
	return date, period, nil
}

// ScheduleList returns one student's bookings in ascending date order. The
// owner query parameter defaults to the demo student.
func ScheduleList(store schedule.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule store unavailable"))
			return
		}

		owner := validators.ParseQueryString(r, "owner", schedule.DefaultOwner)
		if logg != nil {
			ctx = logg.WithOwner(ctx, owner)
		}
		responses.WriteSuccess(w, store.ListByOwner(ctx, owner))
	}
}

// ScheduleAdd books a meal slot.
func ScheduleAdd(store schedule.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule store unavailable"))
			return
		}

		var payload scheduleEntryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		date, period, err := payload.parse()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		owner := validators.SanitizeString(payload.Owner, 120)
		if owner == "" {
			owner = schedule.DefaultOwner
		}

		entry, err := store.Add(ctx, date, period, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// ScheduleUpdate moves a booking to a new date and/or meal period.
func ScheduleUpdate(store schedule.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule store unavailable"))
			return
		}

		var payload scheduleEntryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		date, period, err := payload.parse()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := store.Update(ctx, chi.URLParam(r, "id"), date, period)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// ScheduleCancel marks a booking cancelled, freeing its slot.
func ScheduleCancel(store schedule.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule store unavailable"))
			return
		}

		entry, err := store.Cancel(ctx, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// ScheduleRemove deletes a booking outright; a missing id still returns 200.
func ScheduleRemove(store schedule.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule store unavailable"))
			return
		}

		if err := store.Remove(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
