package handler

import (
	"net/http"

	"github.com/vfg2006/customer-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/middleware"
)

var limitedBody = []func(http.Handler) http.Handler{middleware.LimitBody(maxFormBytes)}

func Healthcheck(store PendingReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(store),
		},
	}
}

func Acquisitions(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/acquisitions",
			Method:  http.MethodGet,
			Handler: ListAcquisitions(service),
		},
		{
			Path:        "/v1/acquisitions",
			Method:      http.MethodPost,
			Handler:     SaveAcquisition(service),
			Middlewares: limitedBody,
		},
		{
			Path:    "/v1/acquisitions/:position",
			Method:  http.MethodDelete,
			Handler: DeleteAcquisition(service),
		},
	}
}

func Churn(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/churn",
			Method:  http.MethodGet,
			Handler: ListChurn(service),
		},
		{
			Path:        "/v1/churn",
			Method:      http.MethodPost,
			Handler:     SaveChurn(service),
			Middlewares: limitedBody,
		},
		{
			Path:    "/v1/churn/:position",
			Method:  http.MethodDelete,
			Handler: DeleteChurn(service),
		},
	}
}

func Metrics(service tracking.MetricsReader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(service),
		},
		{
			Path:    "/v1/comparison",
			Method:  http.MethodGet,
			Handler: GetComparison(service),
		},
		{
			Path:    "/v1/charts/acquisition",
			Method:  http.MethodGet,
			Handler: GetAcquisitionChart(service),
		},
		{
			Path:    "/v1/charts/churn",
			Method:  http.MethodGet,
			Handler: GetChurnChart(service),
		},
		{
			Path:    "/v1/charts/comparison",
			Method:  http.MethodGet,
			Handler: GetComparisonChart(service),
		},
	}
}

func Export(service tracking.MetricsReader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/export/acquisitions",
			Method:  http.MethodGet,
			Handler: ExportAcquisitions(service),
		},
		{
			Path:    "/v1/export/churn",
			Method:  http.MethodGet,
			Handler: ExportChurn(service),
		},
	}
}

func Data(service tracking.MetricsWriter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/data",
			Method:  http.MethodDelete,
			Handler: ClearData(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
