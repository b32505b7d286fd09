package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merendaflow/merenda-backend/api/controllers"
	"github.com/merendaflow/merenda-backend/api/middleware"
	"github.com/merendaflow/merenda-backend/internal/inventory"
	"github.com/merendaflow/merenda-backend/internal/menu"
	"github.com/merendaflow/merenda-backend/internal/reports"
	"github.com/merendaflow/merenda-backend/internal/schedule"
	"github.com/merendaflow/merenda-backend/pkg/config"
	"github.com/merendaflow/merenda-backend/pkg/kv"
	"github.com/merendaflow/merenda-backend/pkg/logger"
	"github.com/merendaflow/merenda-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	backend kv.Pinger,
	registry *prometheus.Registry,
	inventoryStore inventory.Store,
	scheduleStore schedule.Store,
	menuService menu.Service,
	reportService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(metrics.NewHTTPMetrics(registry)),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, backend, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryStore, logg))
			r.Post("/", controllers.InventoryAdd(inventoryStore, logg))
			r.Get("/low-stock", controllers.InventoryLowStock(inventoryStore, logg))
			r.Get("/{id}", controllers.InventoryGet(inventoryStore, logg))
			r.Put("/{id}", controllers.InventoryUpdate(inventoryStore, logg))
			r.Delete("/{id}", controllers.InventoryDelete(inventoryStore, logg))
			r.Patch("/{id}/quantity", controllers.InventoryAdjustQuantity(inventoryStore, logg))
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", controllers.ScheduleList(scheduleStore, logg))
			r.Post("/", controllers.ScheduleAdd(scheduleStore, logg))
			r.Put("/{id}", controllers.ScheduleUpdate(scheduleStore, logg))
			r.Delete("/{id}", controllers.ScheduleRemove(scheduleStore, logg))
			r.Post("/{id}/cancel", controllers.ScheduleCancel(scheduleStore, logg))
		})

		r.Post("/menus/suggestions", controllers.MenuSuggest(menuService, logg))
		r.Post("/reports", controllers.ReportGenerate(reportService, logg))
	})

	return r
}
