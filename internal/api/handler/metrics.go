package handler

import (
	"net/http"

	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
)

// GetSummary retorna os indicadores do topo do dashboard
func GetSummary(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.Summary())
	}
}

// GetComparison retorna aquisição e churn alinhados por mês
func GetComparison(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.AlignedSeries())
	}
}

func GetAcquisitionChart(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.AcquisitionTrend())
	}
}

func GetChurnChart(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.ChurnTrend())
	}
}

func GetComparisonChart(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.Comparison())
	}
}
