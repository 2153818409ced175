package intake

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownField    = errors.New("unknown form field")
	ErrUnknownSequence = errors.New("unknown attachment sequence")
	ErrAttachmentIndex = errors.New("attachment index out of range")
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileTooLarge    = errors.New("file too large")
)

// ValidationMessage is shown at form level whenever field errors exist.
const ValidationMessage = "Por favor, corrija os campos destacados."

// ValidationErrors maps each failing field to its message. Fields that pass are absent.
type ValidationErrors map[Field]string

// Error lists the failing fields in a stable order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// UserMessage implements the user-facing message contract.
func (v ValidationErrors) UserMessage() string { return ValidationMessage }

// Empty reports whether no field failed.
func (v ValidationErrors) Empty() bool { return len(v) == 0 }

// Strings returns the errors keyed by plain field names.
func (v ValidationErrors) Strings() map[string]string {
	out := make(map[string]string, len(v))
	for f, msg := range v {
		out[string(f)] = msg
	}
	return out
}

// EncodingError reports a file that could not be read or encoded.
type EncodingError struct {
	FileName string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %q: %v", e.FileName, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// UserMessage implements the user-facing message contract.
func (e *EncodingError) UserMessage() string {
	return "Falha ao ler a imagem: " + e.FileName
}
