package controllers

import (
	"net/http"

	"github.com/merendaflow/merenda-backend/api/responses"
	"github.com/merendaflow/merenda-backend/api/validators"
	"github.com/merendaflow/merenda-backend/internal/menu"
	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/logger"
)

type menuSuggestionPayload struct {
	MealType   string `json:"meal_type" validate:"required"`
	Guidelines string `json:"guidelines" validate:"max=2000"`
}

// MenuSuggest asks the model for a menu built from current stock.
func MenuSuggest(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		var payload menuSuggestionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mealType, err := enums.ParseMenuMealType(payload.MealType)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown meal type"))
			return
		}

		suggestion, err := svc.Suggest(ctx, mealType, validators.SanitizeString(payload.Guidelines, 2000))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestion)
	}
}
