package projects

import (
	"errors"
	"fmt"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object"
)

var (
	ErrInvalidFloorCount  = errors.New("invalid floor count")
	ErrStoreNotConfigured = errors.New("object store not configured")
)

// Upload stages reported by UploadError.
const (
	StageUpload    = "upload"
	StagePublicURL = "public_url"
)

const (
	messageInsertFailed      = "Falha ao salvar os dados do projeto no banco de dados."
	messageInvalidFloorCount = "Número de pavimentos inválido."
)

// UploadError reports a single file that could not be stored or linked.
type UploadError struct {
	FileName string
	Bucket   string
	Stage    string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// BucketMissing reports whether the configured bucket does not exist.
func (e *UploadError) BucketMissing() bool {
	return errors.Is(e.Err, object.ErrBucketNotFound)
}

func (e *UploadError) UserMessage() string {
	switch {
	case e.BucketMissing():
		return fmt.Sprintf("Erro de Configuração: O bucket '%s' não foi encontrado no armazenamento. Por favor, crie o bucket público no painel do seu projeto.", e.Bucket)
	case e.Stage == StagePublicURL:
		return "Falha ao obter URL pública para a imagem: " + e.FileName
	default:
		return "Falha ao enviar a imagem: " + e.FileName
	}
}

// PersistenceError reports a record that could not be written.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persist project: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) UserMessage() string {
	if errors.Is(e.Err, ErrInvalidFloorCount) {
		return messageInvalidFloorCount
	}
	return messageInsertFailed
}
