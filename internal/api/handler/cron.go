package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/customer-tracker-api/internal/scheduler"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/customer-tracker-api/pkg/log"
)

// Tipos de cron job aceitos em /v1/cron/:type/run
const (
	CronJobTypePersistence = "persistence"
	CronJobTypeAll         = "all"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	PersistenceSyncService *scheduler.PersistenceSyncService
}

// RunCronJob executa manualmente uma cron job
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypePersistence, CronJobTypeAll:
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: persistence, all", nil)
			return
		}

		if services.PersistenceSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de persistência não disponível", nil)
			return
		}

		message := "Cron job iniciada com sucesso"
		if err := services.PersistenceSyncService.TriggerManualSync(); err != nil {
			if !errors.Is(err, scheduler.ErrSyncAlreadyRunning) {
				logger.WithError(err).Error("Erro ao iniciar cron job")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar cron job", nil)
				return
			}
			message = "Cron job já está em andamento"
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.PersistenceSyncService != nil {
			status[CronJobTypePersistence] = services.PersistenceSyncService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
