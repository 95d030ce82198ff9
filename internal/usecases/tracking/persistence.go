package tracking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-tracker-api/internal/domain"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load carrega as duas coleções do armazenamento local. Se alguma chave estiver
// ausente ou ilegível, as coleções são substituídas pelos dados de exemplo,
// que são gravados em seguida. Se a leitura falhar, os dados de exemplo ficam
// apenas em memória, nada é gravado e o erro de leitura é retornado.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acquisitions, churns, err := s.readPersistedLocked(ctx)
	if err == nil {
		sortAcquisitions(acquisitions)
		sortChurns(churns)
		s.acquisitions = acquisitions
		s.churns = churns

		logrus.WithFields(logrus.Fields{
			"acquisition_records": len(acquisitions),
			"churn_records":       len(churns),
		}).Info("tracking: coleções carregadas do armazenamento local")
		return nil
	}

	s.acquisitions = domain.SampleAcquisitionRecords()
	s.churns = domain.SampleChurnRecords()

	switch {
	case errors.Is(err, errNoPersistedState):
		logrus.Info("tracking: nenhum dado salvo, carregando dados de exemplo")
	case errors.Is(err, ErrCorruptPersistedState):
		logrus.WithError(err).Warn("tracking: dados salvos ilegíveis, carregando dados de exemplo")
	default:
		// O que está salvo pode ainda ser válido; não sobrescrever
		logrus.WithError(err).Warn("tracking: armazenamento local indisponível, dados de exemplo mantidos só em memória")
		return err
	}

	acquisitionErr := s.persistLocked(ctx, AcquisitionDataKey)
	churnErr := s.persistLocked(ctx, ChurnDataKey)
	if acquisitionErr != nil {
		return acquisitionErr
	}
	return churnErr
}

// Flush regrava as chaves marcadas como pendentes
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, key := range s.pendingKeysLocked() {
		var err error
		if s.pending[key] == pendingRemove {
			err = s.removeLocked(ctx, key)
		} else {
			err = s.persistLocked(ctx, key)
		}

		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *Service) PendingPersistence() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pendingKeysLocked()
}

func (s *Service) pendingKeysLocked() []string {
	keys := make([]string, 0, len(s.pending))
	for key := range s.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Service) readPersistedLocked(ctx context.Context) ([]domain.AcquisitionRecord, []domain.ChurnRecord, error) {
	acquisitionPayload, acquisitionFound, err := s.repo.Get(ctx, AcquisitionDataKey)
	if err != nil {
		return nil, nil, NewTrackingError(ErrPersistenceUnavailable, apiErrors.ErrDatabaseOperation, AcquisitionDataKey, err.Error())
	}

	churnPayload, churnFound, err := s.repo.Get(ctx, ChurnDataKey)
	if err != nil {
		return nil, nil, NewTrackingError(ErrPersistenceUnavailable, apiErrors.ErrDatabaseOperation, ChurnDataKey, err.Error())
	}

	// As duas chaves precisam existir
	if !acquisitionFound || !churnFound {
		return nil, nil, errNoPersistedState
	}

	acquisitions := make([]domain.AcquisitionRecord, 0)
	if err := json.Unmarshal(acquisitionPayload, &acquisitions); err != nil {
		return nil, nil, NewTrackingError(ErrCorruptPersistedState, apiErrors.ErrCorruptedData, AcquisitionDataKey, err.Error())
	}

	churns := make([]domain.ChurnRecord, 0)
	if err := json.Unmarshal(churnPayload, &churns); err != nil {
		return nil, nil, NewTrackingError(ErrCorruptPersistedState, apiErrors.ErrCorruptedData, ChurnDataKey, err.Error())
	}

	// JSON "null" decodifica para slice nil
	if acquisitions == nil {
		acquisitions = make([]domain.AcquisitionRecord, 0)
	}
	if churns == nil {
		churns = make([]domain.ChurnRecord, 0)
	}

	return acquisitions, churns, nil
}

// persistLocked grava a coleção da chave. Em caso de falha o estado em memória
// é mantido e a chave fica pendente para o próximo Flush.
func (s *Service) persistLocked(ctx context.Context, key string) error {
	payload, err := s.encodeLocked(key)
	if err != nil {
		return NewTrackingError(ErrPersistenceUnavailable, apiErrors.ErrInternalServer, key, err.Error())
	}

	if err := s.repo.Set(ctx, key, payload); err != nil {
		s.pending[key] = pendingWrite

		logrus.WithError(err).WithField("key", key).Warn("tracking: falha ao gravar coleção, gravação ficará pendente")
		return NewTrackingError(ErrPersistenceUnavailable, apiErrors.ErrDatabaseOperation, key, err.Error())
	}

	delete(s.pending, key)
	return nil
}

func (s *Service) removeLocked(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.pending[key] = pendingRemove

		logrus.WithError(err).WithField("key", key).Warn("tracking: falha ao remover chave, remoção ficará pendente")
		return NewTrackingError(ErrPersistenceUnavailable, apiErrors.ErrDatabaseOperation, key, err.Error())
	}

	delete(s.pending, key)
	return nil
}

func (s *Service) encodeLocked(key string) ([]byte, error) {
	switch key {
	case AcquisitionDataKey:
		return json.Marshal(s.acquisitions)
	case ChurnDataKey:
		return json.Marshal(s.churns)
	}
	return nil, fmt.Errorf("chave desconhecida: %s", key)
}
