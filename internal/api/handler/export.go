package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/customer-tracker-api/internal/export"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/customer-tracker-api/pkg/log"
)

// ExportAcquisitions baixa a tabela de aquisição em CSV
func ExportAcquisitions(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := export.WriteAcquisitionCSV(&buf, service.AcquisitionRows())
		writeCSV(w, r, export.AcquisitionFilename, &buf, err)
	}
}

// ExportChurn baixa a tabela de churn em CSV
func ExportChurn(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := export.WriteChurnCSV(&buf, service.ChurnRows())
		writeCSV(w, r, export.ChurnFilename, &buf, err)
	}
}

func writeCSV(w http.ResponseWriter, r *http.Request, filename string, buf *bytes.Buffer, err error) {
	if errors.Is(err, export.ErrNothingToExport) {
		apiErrors.WriteError(w, apiErrors.ErrNothingToExport, "No data to export", nil)
		return
	}

	if err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar CSV")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar CSV", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := buf.WriteTo(w); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar CSV")
	}
}
