package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/customer-tracker-api/infrastructure/repository"
	"github.com/vfg2006/customer-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/customer-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/customer-tracker-api/internal/config"
	"github.com/vfg2006/customer-tracker-api/internal/domain"
	"github.com/vfg2006/customer-tracker-api/internal/scheduler"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestRouter(store tracking.Tracker, syncService *scheduler.PersistenceSyncService) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck(store)...),
		router.WithRoutes(Acquisitions(store)...),
		router.WithRoutes(Churn(store)...),
		router.WithRoutes(Metrics(store)...),
		router.WithRoutes(Export(store)...),
		router.WithRoutes(Data(store)...),
		router.WithRoutes(CronJobs(CronJobServices{PersistenceSyncService: syncService})...),
		router.WithNotFound(NotFoundHandler()),
		router.WithMethodNotAllowed(MethodNotAllowedHandler()),
	)
}

func newSeededRouter(t *testing.T) (http.Handler, tracking.Tracker) {
	t.Helper()

	store := tracking.NewService(repository.NewMemoryKeyValueRepository())
	require.NoError(t, store.Load(context.Background()))

	return newTestRouter(store, nil), store
}

func serve(handler http.Handler, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestListAcquisitions(t *testing.T) {
	h, _ := newSeededRouter(t)

	rec := serve(h, http.MethodGet, "/v1/acquisitions", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rows := decode[[]domain.AcquisitionRow](t, rec)
	require.Len(t, rows, 6)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, "2024-01", rows[0].Month)
	assert.InDelta(t, 31.0078, rows[0].AcquisitionRate, 0.0001)
	assert.InDelta(t, 43.5417, rows[0].CostPerAcquisition, 0.0001)
}

func TestSaveAcquisition(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
		wantMessage string
		wantCode    string
	}{
		{
			name:        "Formulário atualiza mês existente",
			body:        url.Values{"month": {"2024-01"}, "newCustomers": {"50"}, "totalLeads": {"100"}, "acquisitionCost": {"1000"}}.Encode(),
			contentType: "application/x-www-form-urlencoded",
			wantStatus:  http.StatusOK,
			wantMessage: "Acquisition record updated successfully!",
		},
		{
			name:        "JSON adiciona mês novo",
			body:        `{"month":"2024-07","newCustomers":90,"totalLeads":"300","acquisitionCost":2700}`,
			contentType: "application/json; charset=utf-8",
			wantStatus:  http.StatusOK,
			wantMessage: "Acquisition record added successfully!",
		},
		{
			name:        "Mês inválido",
			body:        url.Values{"month": {"julho"}, "newCustomers": {"1"}, "totalLeads": {"1"}, "acquisitionCost": {"1"}}.Encode(),
			contentType: "application/x-www-form-urlencoded",
			wantStatus:  http.StatusBadRequest,
			wantCode:    apiErrors.ErrInvalidFormat,
		},
		{
			name:        "JSON malformado",
			body:        `{"month":`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
			wantCode:    apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newSeededRouter(t)

			rec := serve(h, http.MethodPost, "/v1/acquisitions", tt.body, tt.contentType)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantCode != "" {
				apiErr := decode[apiErrors.APIError](t, rec)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.Equal(t, domain.SampleAcquisitionRecords(), store.Acquisitions())
				return
			}

			response := decode[MutationResponse](t, rec)
			assert.Equal(t, tt.wantMessage, response.Message)
			assert.True(t, response.Persisted)
			assert.Empty(t, response.Warning)
		})
	}
}

func TestSaveAcquisition_UpdatesDerivedMetrics(t *testing.T) {
	h, _ := newSeededRouter(t)

	body := url.Values{"month": {"2024-01"}, "newCustomers": {"50"}, "totalLeads": {"100"}, "acquisitionCost": {"1000"}}.Encode()
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/v1/acquisitions", body, "application/x-www-form-urlencoded").Code)

	rows := decode[[]domain.AcquisitionRow](t, serve(h, http.MethodGet, "/v1/acquisitions", "", ""))
	require.Len(t, rows, 6)
	assert.Equal(t, 50.0, rows[0].AcquisitionRate)
	assert.Equal(t, 20.0, rows[0].CostPerAcquisition)
}

func TestSaveChurn(t *testing.T) {
	h, store := newSeededRouter(t)

	rec := serve(h, http.MethodPost, "/v1/churn", `{"month":"2023-12","totalCustomersStart":100,"churnedCustomers":4}`, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	response := decode[MutationResponse](t, rec)
	assert.Equal(t, "Churn record added successfully!", response.Message)

	churns := store.Churns()
	require.Len(t, churns, 7)
	assert.Equal(t, "2023-12", churns[0].Month)

	rec = serve(h, http.MethodPost, "/v1/churn", `{"month":"2023-12","totalCustomersStart":100}`, "application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decode[apiErrors.APIError](t, rec)
	assert.Equal(t, apiErrors.ErrInvalidFormat, apiErr.Code)
}

func TestDeleteAcquisition(t *testing.T) {
	tests := []struct {
		name       string
		position   string
		wantStatus int
		wantCode   string
		wantSize   int
	}{
		{name: "Primeira posição", position: "0", wantStatus: http.StatusOK, wantSize: 5},
		{name: "Última posição", position: "5", wantStatus: http.StatusOK, wantSize: 5},
		{name: "Posição inexistente", position: "6", wantStatus: http.StatusNotFound, wantCode: apiErrors.ErrPositionOutOfRange, wantSize: 6},
		{name: "Posição negativa", position: "-1", wantStatus: http.StatusNotFound, wantCode: apiErrors.ErrPositionOutOfRange, wantSize: 6},
		{name: "Posição não numérica", position: "abc", wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidFormat, wantSize: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newSeededRouter(t)

			rec := serve(h, http.MethodDelete, "/v1/acquisitions/"+tt.position, "", "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Len(t, store.Acquisitions(), tt.wantSize)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[apiErrors.APIError](t, rec).Code)
				return
			}

			assert.Equal(t, "Acquisition record deleted successfully!", decode[MutationResponse](t, rec).Message)
		})
	}
}

func TestDeleteChurn(t *testing.T) {
	h, store := newSeededRouter(t)

	rec := serve(h, http.MethodDelete, "/v1/churn/0", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Churn record deleted successfully!", decode[MutationResponse](t, rec).Message)
	assert.Equal(t, "2024-02", store.Churns()[0].Month)
}

func TestSummaryAndCharts(t *testing.T) {
	h, _ := newSeededRouter(t)

	summary := decode[domain.Summary](t, serve(h, http.MethodGet, "/v1/summary", "", ""))
	assert.Equal(t, 743, summary.TotalAcquired)
	assert.InDelta(t, 27.5003, summary.AverageAcquisitionRate, 0.0001)

	series := decode[domain.AlignedSeries](t, serve(h, http.MethodGet, "/v1/comparison", "", ""))
	assert.Len(t, series.Months, 6)
	assert.Equal(t, []int{7, 11, 26, 18, 28, 32}, series.ChurnedCustomers)

	trend := decode[domain.TrendSeries](t, serve(h, http.MethodGet, "/v1/charts/acquisition", "", ""))
	assert.Equal(t, "Jan 2024", trend.Labels[0])

	churnTrend := decode[domain.TrendSeries](t, serve(h, http.MethodGet, "/v1/charts/churn", "", ""))
	assert.Len(t, churnTrend.Values, 6)

	chart := decode[domain.ComparisonChart](t, serve(h, http.MethodGet, "/v1/charts/comparison", "", ""))
	assert.Equal(t, "Jun 2024", chart.Labels[5])
	assert.Equal(t, 145, chart.NewCustomers[5])
}

func TestExport(t *testing.T) {
	h, _ := newSeededRouter(t)

	rec := serve(h, http.MethodGet, "/v1/export/acquisitions", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="acquisition_data.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "2024-01,120,387,5225,31.0,43.54", lines[1])

	rec = serve(h, http.MethodGet, "/v1/export/churn", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024-06,653,32,4.9")
}

func TestClearData(t *testing.T) {
	h, store := newSeededRouter(t)

	rec := serve(h, http.MethodDelete, "/v1/data", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All data cleared successfully!", decode[MutationResponse](t, rec).Message)
	assert.Empty(t, store.Acquisitions())

	summary := decode[domain.Summary](t, serve(h, http.MethodGet, "/v1/summary", "", ""))
	assert.Equal(t, domain.Summary{}, summary)

	rows := decode[[]domain.AcquisitionRow](t, serve(h, http.MethodGet, "/v1/acquisitions", "", ""))
	assert.Empty(t, rows)

	// Nada para exportar
	rec = serve(h, http.MethodGet, "/v1/export/churn", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNothingToExport, decode[apiErrors.APIError](t, rec).Code)
}

func TestSave_PersistenceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockKeyValueRepository(ctrl)
	mockRepo.EXPECT().
		Set(gomock.Any(), tracking.AcquisitionDataKey, gomock.Any()).
		Return(errors.New("disk full"))

	store := tracking.NewService(mockRepo)
	h := newTestRouter(store, nil)

	body := url.Values{"month": {"2024-01"}, "newCustomers": {"1"}, "totalLeads": {"2"}, "acquisitionCost": {"3"}}.Encode()
	rec := serve(h, http.MethodPost, "/v1/acquisitions", body, "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, rec.Code)

	response := decode[MutationResponse](t, rec)
	assert.False(t, response.Persisted)
	assert.NotEmpty(t, response.Warning)
	assert.Len(t, store.Acquisitions(), 1)

	health := decode[map[string]any](t, serve(h, http.MethodGet, "/healthcheck", "", ""))
	assert.Equal(t, "degraded", health["status"])
}

func TestCronJobs(t *testing.T) {
	store := tracking.NewService(repository.NewMemoryKeyValueRepository())
	syncService := scheduler.NewPersistenceSyncService(store, &config.Config{
		PersistenceSync: config.PersistenceSync{CronSchedule: "* * * * *", Enabled: true},
	})
	h := newTestRouter(store, syncService)

	rec := serve(h, http.MethodPost, "/v1/cron/persistence/run", "", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = serve(h, http.MethodPost, "/v1/cron/meta/run", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decode[apiErrors.APIError](t, rec).Code)

	rec = serve(h, http.MethodGet, "/v1/cron/status", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[map[string]map[string]any](t, rec)
	require.Contains(t, status, CronJobTypePersistence)
	assert.Equal(t, "* * * * *", status[CronJobTypePersistence]["sync_cron"])
}

func TestUnknownRoutes(t *testing.T) {
	h, _ := newSeededRouter(t)

	rec := serve(h, http.MethodGet, "/v1/nothing", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrRouteNotFound, decode[apiErrors.APIError](t, rec).Code)

	rec = serve(h, http.MethodPut, "/v1/acquisitions", "", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, apiErrors.ErrMethodNotAllowed, decode[apiErrors.APIError](t, rec).Code)
}
