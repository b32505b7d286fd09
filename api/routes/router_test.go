package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merendaflow/merenda-backend/internal/inventory"
	"github.com/merendaflow/merenda-backend/internal/menu"
	"github.com/merendaflow/merenda-backend/internal/reports"
	"github.com/merendaflow/merenda-backend/internal/schedule"
	"github.com/merendaflow/merenda-backend/pkg/config"
	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
	"github.com/merendaflow/merenda-backend/pkg/kv"
	"github.com/merendaflow/merenda-backend/pkg/types"
)

type stubMenuService struct {
	suggestion *menu.Suggestion
	err        error
}

func (s stubMenuService) Suggest(context.Context, enums.MenuMealType, string) (*menu.Suggestion, error) {
	return s.suggestion, s.err
}

func newTestServer(t *testing.T, menuSvc menu.Service) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemoryStore()

	invStore, err := inventory.NewStore(ctx, mem, nil, nil)
	require.NoError(t, err)
	schedStore, err := schedule.NewStore(ctx, mem, nil, nil)
	require.NoError(t, err)
	reportSvc, err := reports.NewService(invStore, schedStore)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	handler := NewRouter(cfg, nil, mem, prometheus.NewRegistry(), invStore, schedStore, menuSvc, reportSvc)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func decodeError(t *testing.T, resp *http.Response) types.APIError {
	t.Helper()
	defer resp.Body.Close()
	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test", resp.Header.Get("X-Merenda-Env"))

	resp, err = http.Get(server.URL + "/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInventoryLifecycle(t *testing.T) {
	server := newTestServer(t, nil)
	base := server.URL + "/api/v1/inventory"

	resp := doJSON(t, http.MethodPost, base, map[string]any{
		"name":                "Banana",
		"quantity":            80,
		"unit":                "unidade",
		"nutritional_info":    "Potássio",
		"low_stock_threshold": 15,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created inventory.FoodItem
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.ID)

	resp = doJSON(t, http.MethodGet, base+"/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched inventory.FoodItem
	decodeData(t, resp, &fetched)
	assert.Equal(t, "Banana", fetched.Name)

	resp = doJSON(t, http.MethodPatch, base+"/"+created.ID+"/quantity", map[string]any{"quantity": -3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &fetched)
	assert.True(t, fetched.Quantity.IsZero(), "negative adjustments clamp to zero")

	resp = doJSON(t, http.MethodGet, base+"/low-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low []inventory.FoodItem
	decodeData(t, resp, &low)
	found := false
	for _, item := range low {
		if item.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)

	resp = doJSON(t, http.MethodDelete, base+"/"+created.ID, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInventoryAdd_RejectsBadPayload(t *testing.T) {
	server := newTestServer(t, nil)
	base := server.URL + "/api/v1/inventory"

	resp := doJSON(t, http.MethodPost, base, map[string]any{"quantity": 10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	apiErr := decodeError(t, resp)
	assert.Equal(t, string(pkgerrors.CodeValidation), apiErr.Code)

	resp = doJSON(t, http.MethodPost, base, map[string]any{
		"name": "Café", "quantity": -1, "unit": "kg",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base, map[string]any{
		"name": "Café", "quantity": 1, "unit": "kg", "bogus_field": true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unknown fields are rejected")
	resp.Body.Close()
}

func TestScheduleLifecycle(t *testing.T) {
	server := newTestServer(t, nil)
	base := server.URL + "/api/v1/schedules"

	resp := doJSON(t, http.MethodPost, base, map[string]any{
		"date": "2026-03-10", "meal_period": "lunch",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created schedule.Entry
	decodeData(t, resp, &created)
	assert.Equal(t, schedule.DefaultOwner, created.Owner, "blank owner falls back to the demo student")

	resp = doJSON(t, http.MethodPost, base, map[string]any{
		"date": "2026-03-10", "meal_period": "lunch",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	apiErr := decodeError(t, resp)
	assert.Equal(t, string(pkgerrors.CodeConflict), apiErr.Code)
	assert.NotNil(t, apiErr.Details)

	resp = doJSON(t, http.MethodPost, base+"/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled schedule.Entry
	decodeData(t, resp, &cancelled)
	assert.Equal(t, "cancelled", string(cancelled.Status))

	resp = doJSON(t, http.MethodPost, base, map[string]any{
		"date": "2026-03-10", "meal_period": "lunch",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "cancelled bookings free the slot")
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, base+fmt.Sprintf("?owner=%s", schedule.DefaultOwner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []schedule.Entry
	decodeData(t, resp, &entries)
	assert.Len(t, entries, 2)
}

func TestScheduleAdd_RejectsBadInput(t *testing.T) {
	server := newTestServer(t, nil)
	base := server.URL + "/api/v1/schedules"

	resp := doJSON(t, http.MethodPost, base, map[string]any{
		"date": "10/03/2026", "meal_period": "lunch",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base, map[string]any{
		"date": "2026-03-10", "meal_period": "dinner",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "gateway meal types are not booking periods")
	resp.Body.Close()
}

func TestScheduleUpdate_NotFound(t *testing.T) {
	server := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPut, server.URL+"/api/v1/schedules/missing", map[string]any{
		"date": "2026-03-10", "meal_period": "lunch",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMenuSuggestions(t *testing.T) {
	suggestion := &menu.Suggestion{
		MenuItems: []menu.MenuItem{{Name: "Arroz com frango"}},
		Reasoning: "uses the largest stock first",
	}
	server := newTestServer(t, stubMenuService{suggestion: suggestion})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/menus/suggestions", map[string]any{
		"meal_type": "lunch",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got menu.Suggestion
	decodeData(t, resp, &got)
	assert.Equal(t, "Arroz com frango", got.MenuItems[0].Name)
}

func TestMenuSuggestions_UnavailableWithoutService(t *testing.T) {
	server := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/menus/suggestions", map[string]any{
		"meal_type": "lunch",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestMenuSuggestions_RejectsBookingPeriod(t *testing.T) {
	server := newTestServer(t, stubMenuService{})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/menus/suggestions", map[string]any{
		"meal_type": "morning_snack",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReports(t *testing.T) {
	server := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/reports", map[string]any{
		"kind": "inventory_full",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report reports.Report
	decodeData(t, resp, &report)
	assert.NotEmpty(t, report.Rows)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/reports", map[string]any{
		"kind": "schedule_activity",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "schedule report needs a date range")
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/reports", map[string]any{
		"kind": "schedule_activity", "start": "2026-03-01", "end": "2026-03-31",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
