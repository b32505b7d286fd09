package controllers

import (
	"net/http"

	"github.com/merendaflow/merenda-backend/api/responses"
	"github.com/merendaflow/merenda-backend/pkg/config"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/kv"
	"github.com/merendaflow/merenda-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Merenda-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the persistence backend; a nil pinger (memory backend)
// is always ready.
func HealthReady(cfg *config.Config, pinger kv.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Merenda-Env", cfg.App.Env)

		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persistence backend unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
