package handler

import (
	"mime"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/customer-tracker-api/internal/forms"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/customer-tracker-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxFormBytes = 64 << 10

const persistenceWarning = "Os dados foram aplicados, mas o armazenamento local está indisponível. A gravação será repetida automaticamente."

// MutationResponse é a resposta das operações de escrita
type MutationResponse struct {
	Message   string `json:"message"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
	Record    any    `json:"record,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// readValues lê o corpo como formulário ou como objeto JSON
func readValues(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		values, err := forms.ValuesFromJSON(r.Body)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar corpo JSON")
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.Wrap(err, "erro ao ler formulário")
	}
	return r.PostForm, nil
}

// writeInputError responde 400 para corpo ilegível ou campo inválido
func writeInputError(w http.ResponseWriter, r *http.Request, err error) {
	log.ForContext(r.Context()).WithError(err).Warn("Entrada rejeitada")

	var fieldErr *forms.FieldError
	if errors.As(err, &fieldErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, fieldErr.Error(), map[string]string{
			"field":  fieldErr.Field,
			"reason": fieldErr.Reason,
		})
		return
	}

	if errors.Is(err, forms.ErrMalformedInput) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler requisição", nil)
}

// writeMutation responde uma escrita. Falha de gravação não desfaz a alteração,
// então a resposta continua 200 com persisted=false.
func writeMutation(w http.ResponseWriter, r *http.Request, message string, record any, err error) {
	response := MutationResponse{
		Message:   message,
		Persisted: true,
		Record:    record,
	}

	if err != nil {
		if !errors.Is(err, tracking.ErrPersistenceUnavailable) {
			writeTrackingError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithError(err).Warn("Alteração aplicada sem gravação no armazenamento local")
		response.Persisted = false
		response.Warning = persistenceWarning
	}

	writeJSON(w, r, http.StatusOK, response)
}

func writeTrackingError(w http.ResponseWriter, r *http.Request, err error) {
	var trackingErr *tracking.TrackingError
	if !errors.As(err, &trackingErr) {
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado no store")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
		return
	}

	message := "Erro ao acessar o armazenamento local"
	if errors.Is(err, tracking.ErrOutOfRange) {
		message = "Nenhum registro na posição informada"
	}

	apiErrors.WriteError(w, trackingErr.Code, message, map[string]string{
		"key":     trackingErr.Key,
		"details": trackingErr.Details,
	})
}
