package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/customer-tracker-api/internal/forms"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/customer-tracker-api/pkg/log"
)

// ListAcquisitions retorna a tabela de aquisição em ordem de mês
func ListAcquisitions(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.AcquisitionRows())
	}
}

// SaveAcquisition insere ou substitui o registro de aquisição do mês
func SaveAcquisition(service tracking.MetricsWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readValues(r)
		if err != nil {
			writeInputError(w, r, err)
			return
		}

		record, err := forms.ParseAcquisition(values)
		if err != nil {
			writeInputError(w, r, err)
			return
		}

		updated, err := service.UpsertAcquisition(r.Context(), record)

		message := "Acquisition record added successfully!"
		if updated {
			message = "Acquisition record updated successfully!"
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"month":   record.Month,
			"updated": updated,
		}).Info("Registro de aquisição salvo")

		writeMutation(w, r, message, record, err)
	}
}

// DeleteAcquisition remove o registro de aquisição na posição da tabela
func DeleteAcquisition(service tracking.MetricsWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position, ok := positionParam(w, r)
		if !ok {
			return
		}

		removed, err := service.DeleteAcquisitionAt(r.Context(), position)
		if err != nil && !errors.Is(err, tracking.ErrPersistenceUnavailable) {
			writeTrackingError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"position": position,
			"month":    removed.Month,
		}).Info("Registro de aquisição removido")

		writeMutation(w, r, "Acquisition record deleted successfully!", removed, err)
	}
}

// ListChurn retorna a tabela de churn em ordem de mês
func ListChurn(service tracking.MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.ChurnRows())
	}
}

// SaveChurn insere ou substitui o registro de churn do mês
func SaveChurn(service tracking.MetricsWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readValues(r)
		if err != nil {
			writeInputError(w, r, err)
			return
		}

		record, err := forms.ParseChurn(values)
		if err != nil {
			writeInputError(w, r, err)
			return
		}

		updated, err := service.UpsertChurn(r.Context(), record)

		message := "Churn record added successfully!"
		if updated {
			message = "Churn record updated successfully!"
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"month":   record.Month,
			"updated": updated,
		}).Info("Registro de churn salvo")

		writeMutation(w, r, message, record, err)
	}
}

// DeleteChurn remove o registro de churn na posição da tabela
func DeleteChurn(service tracking.MetricsWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position, ok := positionParam(w, r)
		if !ok {
			return
		}

		removed, err := service.DeleteChurnAt(r.Context(), position)
		if err != nil && !errors.Is(err, tracking.ErrPersistenceUnavailable) {
			writeTrackingError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"position": position,
			"month":    removed.Month,
		}).Info("Registro de churn removido")

		writeMutation(w, r, "Churn record deleted successfully!", removed, err)
	}
}

// ClearData esvazia as duas coleções
func ClearData(service tracking.MetricsWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := service.ClearAll(r.Context())

		log.ForContext(r.Context()).Info("Todas as coleções foram esvaziadas")

		writeMutation(w, r, "All data cleared successfully!", nil, err)
	}
}

func positionParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("position")
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Posição não informada", nil)
		return 0, false
	}

	position, err := strconv.Atoi(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Posição inválida", map[string]string{"position": raw})
		return 0, false
	}

	return position, true
}
