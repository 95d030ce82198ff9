package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-tracker-api/internal/config"
	"github.com/vfg2006/customer-tracker-api/pkg/utils"
)

var ErrSyncAlreadyRunning = errors.New("persistence sync already running")

// Flusher é a parte do store usada pela sincronização
type Flusher interface {
	Flush(ctx context.Context) error
	PendingPersistence() []string
}

// PersistenceSyncConfig representa a configuração do agendador de regravação
type PersistenceSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PersistenceSyncService regrava periodicamente as coleções cuja gravação falhou
type PersistenceSyncService struct {
	scheduler           *gocron.Scheduler
	config              PersistenceSyncConfig
	store               Flusher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastError           string
}

func NewPersistenceSyncService(store Flusher, appConfig *config.Config) *PersistenceSyncService {
	syncConfig := PersistenceSyncConfig{
		CronSchedule: appConfig.PersistenceSync.CronSchedule,
		SyncEnabled:  appConfig.PersistenceSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de persistência carregada")

	return &PersistenceSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		store:     store,
	}
}

// Start agenda a regravação e para o agendador quando o contexto for cancelado
func (s *PersistenceSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de persistência desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de persistência")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunSync(ctx); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.WithError(err).Warn("Sincronização de persistência terminou com erro")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de persistência: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de persistência")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSync executa uma regravação e retorna o ID da execução
func (s *PersistenceSyncService) RunSync(ctx context.Context) (string, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return "", ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.lastRunID = runID
	s.syncMutex.Unlock()

	logger := logrus.WithField("run_id", runID)

	pending := s.store.PendingPersistence()
	if len(pending) == 0 {
		logger.Debug("Nenhuma coleção pendente de gravação")
	} else {
		logger.WithField("keys", pending).Info("Regravando coleções pendentes")
	}

	flushErr := s.store.Flush(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = ""
	if flushErr != nil {
		s.lastError = flushErr.Error()
		return runID, flushErr
	}

	if len(pending) > 0 {
		logger.WithField("duration", time.Since(s.lastSyncStartedAt).String()).Info("Coleções pendentes gravadas")
	}

	return runID, nil
}

// TriggerManualSync inicia uma regravação em segundo plano
func (s *PersistenceSyncService) TriggerManualSync() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de persistência já em andamento, ignorando solicitação manual")
		return ErrSyncAlreadyRunning
	}

	logrus.Info("Iniciando sincronização manual de persistência")
	go func() {
		if _, err := s.RunSync(context.Background()); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.WithError(err).Warn("Sincronização manual de persistência terminou com erro")
		}
	}()

	return nil
}

// GetStatus retorna o status atual da sincronização
func (s *PersistenceSyncService) GetStatus() map[string]any {
	pending := s.store.PendingPersistence()

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_error":             s.lastError,
		"pending_keys":           pending,
	}
}
