// Package account implements sign-in, sign-out, registration and password
// recovery, writing the session on success.
package account

import (
	"errors"
	"fmt"
)

var (
	ErrPasswordMismatch = errors.New("les mots de passe ne correspondent pas")
	ErrWeakPassword     = errors.New("le mot de passe doit contenir au moins 8 caractères, une majuscule, une minuscule et un chiffre")
	ErrNoVerifier       = errors.New("account: google sign-in is not configured")
)

// FieldError rejects a form field before any request is sent.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s : %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
