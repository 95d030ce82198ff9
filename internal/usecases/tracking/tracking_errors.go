package tracking

import (
	"errors"
	"fmt"
)

// Erros específicos do armazenamento de métricas
var (
	// Erros de validação
	ErrOutOfRange = errors.New("position out of range")

	// Erros de persistência
	ErrPersistenceUnavailable = errors.New("local storage unavailable")
	ErrCorruptPersistedState  = errors.New("persisted state could not be parsed")

	errNoPersistedState = errors.New("no persisted state")
)

// TrackingError é um erro com contexto adicional sobre a coleção envolvida
type TrackingError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Key     string // Chave da coleção (acquisitionData ou churnData)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *TrackingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *TrackingError) Unwrap() error {
	return e.Err
}

// NewTrackingError cria um novo TrackingError
func NewTrackingError(err error, code string, key string, details string) *TrackingError {
	return &TrackingError{
		Err:     err,
		Code:    code,
		Key:     key,
		Details: details,
	}
}
