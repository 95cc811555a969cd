// Package orders implements the order wizard: a four-step draft with
// per-step validation, an advisory price estimate and a single multipart
// submission.
package orders

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedExtension = errors.New("le fichier doit être au format .pdf, .jpg ou .jpeg")
	ErrFileTooLarge         = errors.New("fichier trop volumineux")
	ErrNoFile               = errors.New("aucun fichier sélectionné")
	ErrNotConfirming        = errors.New("orders: confirmation is not open")
	ErrAwaitingConfirmation = errors.New("orders: confirm or cancel the order")
)

// ValidationError blocks advancement from a wizard step.
// It never reaches the network layer.
type ValidationError struct {
	Step   Step
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(step Step, field, format string, args ...any) *ValidationError {
	return &ValidationError{Step: step, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a wizard validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
