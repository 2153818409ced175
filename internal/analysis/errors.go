package analysis

import "errors"

var (
	ErrMissingField  = errors.New("analysis field missing")
	ErrTrailingData  = errors.New("unexpected data after analysis object")
	ErrNotConfigured = errors.New("analysis client not configured")
)

// UserMessage is shown for every analysis failure.
const UserMessage = "Falha na análise completa pela IA."

// Error wraps any failure of the analysis step.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "analysis failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) UserMessage() string { return UserMessage }
