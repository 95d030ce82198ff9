package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
)

// PendingReporter informa as coleções com gravação pendente
type PendingReporter interface {
	PendingPersistence() []string
}

func HealthcheckHandler(store PendingReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pending := store.PendingPersistence()

		status := "ok"
		if len(pending) > 0 {
			status = "degraded"
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"status":             status,
			"time":               time.Now().Format(time.RFC3339),
			"pendingPersistence": pending,
		})
	})
}

// NotFoundHandler responde rotas inexistentes no formato de erro da API
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada", nil)
	})
}

func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não suportado para esta rota", nil)
	})
}
