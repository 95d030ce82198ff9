package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-tracker-api/internal/api/handler"
	"github.com/vfg2006/customer-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/customer-tracker-api/internal/config"
	"github.com/vfg2006/customer-tracker-api/internal/scheduler"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/middleware"
)

const (
	defaultReadHeaderTimeout = 2 * time.Second
	defaultShutdownTimeout   = 15 * time.Second
)

type Server struct {
	httpServer      *http.Server
	store           tracking.Tracker
	shutdownTimeout time.Duration
}

// NewHandler monta as rotas e a cadeia de middlewares
func NewHandler(cfg *config.Config, store tracking.Tracker, persistenceSyncService *scheduler.PersistenceSyncService) http.Handler {
	cronServices := handler.CronJobServices{
		PersistenceSyncService: persistenceSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(store)...),
		router.WithRoutes(handler.Acquisitions(store)...),
		router.WithRoutes(handler.Churn(store)...),
		router.WithRoutes(handler.Metrics(store)...),
		router.WithRoutes(handler.Export(store)...),
		router.WithRoutes(handler.Data(store)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
		router.WithNotFound(handler.NotFoundHandler()),
		router.WithMethodNotAllowed(handler.MethodNotAllowedHandler()),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(
	cfg *config.Config,
	store tracking.Tracker,
	persistenceSyncService *scheduler.PersistenceSyncService,
) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store de métricas não informado")
	}

	readHeaderTimeout := cfg.Server.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = defaultReadHeaderTimeout
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, store, persistenceSyncService),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		store:           store,
		shutdownTimeout: shutdownTimeout,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": s.shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para o servidor HTTP e tenta gravar o que ficou pendente
func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	if pending := s.store.PendingPersistence(); len(pending) > 0 {
		logrus.WithField("keys", pending).Info("Gravando coleções pendentes antes de encerrar")

		if err := s.store.Flush(ctx); err != nil {
			logrus.WithError(err).Warn("Coleções pendentes não puderam ser gravadas")
		}
	}

	return nil
}
