package controllers

import (
	"net/http"

	"github.com/merendaflow/merenda-backend/api/responses"
	"github.com/merendaflow/merenda-backend/api/validators"
	"github.com/merendaflow/merenda-backend/internal/reports"
	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/logger"
	"github.com/merendaflow/merenda-backend/pkg/types"
)

type reportPayload struct {
	Kind  string `json:"kind" validate:"required"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportGenerate renders one of the tabular reports.
func ReportGenerate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		var payload reportPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		kind, err := enums.ParseReportKind(payload.Kind)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown report kind"))
			return
		}

		start, err := parseOptionalDate(payload.Start, "start")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		end, err := parseOptionalDate(payload.End, "end")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := svc.Generate(ctx, kind, start, end)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func parseOptionalDate(raw, field string) (types.Date, error) {
	if raw == "" {
		return types.Date{}, nil
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, pkgerrors.New(pkgerrors.CodeValidation, "must be a YYYY-MM-DD date").
			WithDetails(map[string]any{"field": field})
	}
	return date, nil
}
