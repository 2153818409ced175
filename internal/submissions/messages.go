package submissions

import (
	"errors"
	"net/http"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/analysis"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/projects"
)

// GenericMessage is shown for failures that carry no message of their own.
const GenericMessage = "Ocorreu um erro inesperado. Tente novamente."

// InFlightMessage is shown when the session already has a submission running.
const InFlightMessage = "Já existe um envio em andamento. Aguarde a conclusão."

type userMessager interface {
	UserMessage() string
}

// UserMessage picks the message shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return GenericMessage
}

// ErrorCode classifies err for API responses.
func ErrorCode(err error) string {
	var (
		validationErrs intake.ValidationErrors
		encodingErr    *intake.EncodingError
		uploadErr      *projects.UploadError
		persistErr     *projects.PersistenceError
		analysisErr    *analysis.Error
	)
	switch {
	case errors.As(err, &validationErrs):
		return "validation_error"
	case errors.As(err, &encodingErr):
		return "encoding_error"
	case errors.As(err, &uploadErr):
		if uploadErr.BucketMissing() {
			return "storage_not_provisioned"
		}
		return "upload_error"
	case errors.As(err, &persistErr):
		if errors.Is(err, projects.ErrInvalidFloorCount) {
			return "validation_error"
		}
		return "persistence_error"
	case errors.Is(err, ErrInFlight):
		return "submission_in_flight"
	case errors.As(err, &analysisErr):
		return "analysis_error"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps an outcome to the status code of the JSON API.
func HTTPStatus(o Outcome) int {
	if o.State == StateSucceeded {
		return http.StatusCreated
	}
	switch ErrorCode(o.Err) {
	case "validation_error", "encoding_error":
		return http.StatusUnprocessableEntity
	case "analysis_error", "upload_error":
		return http.StatusBadGateway
	case "storage_not_provisioned", "persistence_error":
		return http.StatusInternalServerError
	case "submission_in_flight":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
